package catalog

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
	"pharmapos/m/internal/store"
)

// MedicineInput is a create or partial update request. Nil fields are left
// unchanged on update. The category may be given by id or by name.
type MedicineInput struct {
	Name           *string  `json:"name"`
	CategoryID     *int64   `json:"category_id"`
	Category       *string  `json:"category"`
	DosageForm     *string  `json:"dosage_form"`
	Strength       *string  `json:"strength"`
	Manufacturer   *string  `json:"manufacturer"`
	Indication     *string  `json:"indication"`
	Classification *string  `json:"classification"`
	Price          *float64 `json:"price"`
	Cost           *float64 `json:"cost"`
	Stock          *int64   `json:"stock"`
	MinStock       *int64   `json:"min_stock"`
	Barcode        *string  `json:"barcode"`
	SKU            *string  `json:"sku"`
	ExpiryDate     *string  `json:"expiry_date"`
}

// CreateMedicine adds a medicine. Name, category, dosage form, strength and
// price are required. Another medicine with the same name and strength is
// rejected with ErrDuplicateMedicine; the same name at a different strength
// is a separate product.
func (s *Service) CreateMedicine(ctx context.Context, in MedicineInput) (domain.Medicine, error) {
	if in.Name == nil || in.DosageForm == nil || in.Strength == nil || in.Price == nil ||
		(in.CategoryID == nil && in.Category == nil) {
		return domain.Medicine{}, ValidationError("name, category, dosage_form, strength and price are required")
	}

	var m domain.Medicine
	if err := s.apply(ctx, &m, in); err != nil {
		return domain.Medicine{}, err
	}

	exists, err := s.store.MedicineExists(ctx, m.Name, m.Strength)
	if err != nil {
		return domain.Medicine{}, err
	}
	if exists {
		return domain.Medicine{}, ErrDuplicateMedicine
	}

	if err := s.store.CreateMedicine(ctx, &m); err != nil {
		return domain.Medicine{}, err
	}
	return m, nil
}

func (s *Service) GetMedicine(ctx context.Context, id int64) (domain.Medicine, error) {
	return s.store.GetMedicine(ctx, id)
}

// UpdateMedicine applies the non-nil fields of in to medicine id. Stock is
// only written when in.Stock is set; the returned record carries the stock
// stored after the update.
func (s *Service) UpdateMedicine(ctx context.Context, id int64, in MedicineInput) (domain.Medicine, error) {
	m, err := s.store.GetMedicine(ctx, id)
	if err != nil {
		return domain.Medicine{}, err
	}
	if err := s.apply(ctx, &m, in); err != nil {
		return domain.Medicine{}, err
	}
	if err := s.store.UpdateMedicine(ctx, &m, in.Stock != nil); err != nil {
		return domain.Medicine{}, err
	}
	return s.store.GetMedicine(ctx, id)
}

func (s *Service) DeleteMedicine(ctx context.Context, id int64) error {
	return s.store.DeleteMedicine(ctx, id)
}

// ListMedicines returns page (1-based) of the catalog, PageSize records per
// page, optionally filtered by name.
func (s *Service) ListMedicines(ctx context.Context, page int, search string) (domain.MedicinePage, error) {
	if page < 1 {
		page = 1
	}
	data, total, err := s.store.ListMedicines(ctx, strings.TrimSpace(search), PageSize, (page-1)*PageSize)
	if err != nil {
		return domain.MedicinePage{}, err
	}
	return domain.MedicinePage{
		Data:  data,
		Total: total,
		Page:  page,
		Pages: int((total + PageSize - 1) / PageSize),
	}, nil
}

// SearchMedicines matches query against medicine names, case-insensitively.
func (s *Service) SearchMedicines(ctx context.Context, query string) ([]domain.Medicine, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ValidationError("query is required")
	}
	return s.store.SearchMedicines(ctx, query, SearchLimit)
}

// LowStock lists medicines at or below their minimum stock.
func (s *Service) LowStock(ctx context.Context) ([]domain.Medicine, error) {
	return s.store.ListLowStock(ctx)
}

func (s *Service) apply(ctx context.Context, m *domain.Medicine, in MedicineInput) error {
	setString := func(dst *string, src *string, field string, required bool) error {
		if src == nil {
			return nil
		}
		v := strings.TrimSpace(*src)
		if required && v == "" {
			return ValidationError(field + " must not be empty")
		}
		*dst = v
		return nil
	}
	for _, f := range []struct {
		dst      *string
		src      *string
		name     string
		required bool
	}{
		{&m.Name, in.Name, "name", true},
		{&m.DosageForm, in.DosageForm, "dosage_form", true},
		{&m.Strength, in.Strength, "strength", true},
		{&m.Manufacturer, in.Manufacturer, "manufacturer", false},
		{&m.Indication, in.Indication, "indication", false},
		{&m.Classification, in.Classification, "classification", false},
		{&m.Barcode, in.Barcode, "barcode", false},
		{&m.SKU, in.SKU, "sku", false},
	} {
		if err := setString(f.dst, f.src, f.name, f.required); err != nil {
			return err
		}
	}

	if in.Price != nil {
		if *in.Price < 0 {
			return ValidationError("price must not be negative")
		}
		m.Price = *in.Price
	}
	if in.Cost != nil {
		if *in.Cost < 0 {
			return ValidationError("cost must not be negative")
		}
		m.Cost = in.Cost
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return ValidationError("stock must not be negative")
		}
		m.Stock = *in.Stock
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return ValidationError("min_stock must not be negative")
		}
		m.MinStock = *in.MinStock
	}
	if in.ExpiryDate != nil {
		if v := strings.TrimSpace(*in.ExpiryDate); v == "" {
			m.ExpiryDate = nil
		} else {
			m.ExpiryDate = &v
		}
	}

	if in.CategoryID != nil || in.Category != nil {
		c, err := s.resolveCategory(ctx, in.CategoryID, in.Category)
		if err != nil {
			return err
		}
		m.CategoryID, m.Category = c.ID, c.Name
	}
	return nil
}

func (s *Service) resolveCategory(ctx context.Context, id *int64, name *string) (domain.Category, error) {
	var (
		c   domain.Category
		err error
	)
	if id != nil {
		c, err = s.store.GetCategory(ctx, *id)
	} else {
		c, err = s.store.GetCategoryByName(ctx, strings.TrimSpace(*name))
	}
	if errors.Is(err, store.ErrNotFound) {
		return c, ValidationError("unknown category")
	}
	return c, err
}
