package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pharmapos/m/domain"
	"pharmapos/m/internal/catalog"
	"pharmapos/m/internal/store"
	"pharmapos/m/internal/store/storetest"
)

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) *catalog.Service {
	t.Helper()
	st := storetest.New(t)
	storetest.Category(t, st, "Antibiotics")
	return catalog.New(st)
}

func amoxicillin(strength string) catalog.MedicineInput {
	return catalog.MedicineInput{
		Name:       ptr("Amoxicillin 500mg"),
		Category:   ptr("Antibiotics"),
		DosageForm: ptr("Capsule"),
		Strength:   ptr(strength),
		Price:      ptr(12.99),
		Stock:      ptr(int64(100)),
		MinStock:   ptr(int64(20)),
	}
}

func TestCreateMedicineDuplicateGuard(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first, err := svc.CreateMedicine(ctx, amoxicillin("500mg"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Category != "Antibiotics" || first.CategoryID == 0 {
		t.Errorf("category not resolved: %+v", first)
	}

	if _, err := svc.CreateMedicine(ctx, amoxicillin("500mg")); !errors.Is(err, catalog.ErrDuplicateMedicine) {
		t.Errorf("same name and strength: err = %v, want ErrDuplicateMedicine", err)
	}
	if _, err := svc.CreateMedicine(ctx, amoxicillin("250mg")); err != nil {
		t.Errorf("different strength should be accepted: %v", err)
	}
}

func TestCreateMedicineValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	missing := amoxicillin("500mg")
	missing.Price = nil
	if _, err := svc.CreateMedicine(ctx, missing); !catalog.IsValidation(err) {
		t.Errorf("missing price: err = %v", err)
	}

	unknown := amoxicillin("500mg")
	unknown.Category = ptr("Nope")
	if _, err := svc.CreateMedicine(ctx, unknown); !catalog.IsValidation(err) {
		t.Errorf("unknown category: err = %v", err)
	}

	negative := amoxicillin("500mg")
	negative.Price = ptr(-1.0)
	if _, err := svc.CreateMedicine(ctx, negative); !catalog.IsValidation(err) {
		t.Errorf("negative price: err = %v", err)
	}

	blank := amoxicillin("500mg")
	blank.Name = ptr("  ")
	if _, err := svc.CreateMedicine(ctx, blank); !catalog.IsValidation(err) {
		t.Errorf("blank name: err = %v", err)
	}
}

func TestUpdateMedicineIsPartial(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	m, err := svc.CreateMedicine(ctx, amoxicillin("500mg"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateMedicine(ctx, m.ID, catalog.MedicineInput{Price: ptr(11.5), ExpiryDate: ptr("2027-01-31")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 11.5 || updated.Name != "Amoxicillin 500mg" || updated.Stock != 100 {
		t.Errorf("updated = %+v", updated)
	}
	if updated.ExpiryDate == nil || *updated.ExpiryDate != "2027-01-31" {
		t.Errorf("expiry = %v", updated.ExpiryDate)
	}

	if _, err := svc.UpdateMedicine(ctx, 999, catalog.MedicineInput{Price: ptr(1.0)}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("update missing: err = %v", err)
	}
	if err := svc.DeleteMedicine(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteMedicine(ctx, m.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("delete missing: err = %v", err)
	}
}

// saleDuringUpdate commits a sale of the medicine between the catalog's read
// and its write.
type saleDuringUpdate struct {
	*store.Store
	sold int64
}

func (s *saleDuringUpdate) UpdateMedicine(ctx context.Context, m *domain.Medicine, setStock bool) error {
	txn := domain.Transaction{
		ID:            "concurrent-sale",
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
		Cashier:       "ana",
		Items:         []domain.TransactionItem{{MedicineID: m.ID, Name: m.Name, Quantity: s.sold, UnitPrice: m.Price}},
	}
	if _, err := s.Store.CommitSale(ctx, &txn); err != nil {
		return err
	}
	return s.Store.UpdateMedicine(ctx, m, setStock)
}

func TestPriceEditKeepsConcurrentSaleDecrement(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	storetest.Category(t, st, "Antibiotics")
	in := amoxicillin("500mg")
	in.Stock = ptr(int64(5))
	m, err := catalog.New(st).CreateMedicine(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	svc := catalog.New(&saleDuringUpdate{Store: st, sold: 5})
	updated, err := svc.UpdateMedicine(ctx, m.ID, catalog.MedicineInput{Price: ptr(11.0)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stock != 0 || updated.Price != 11 {
		t.Errorf("after selling 5 of 5 and a price edit: stock=%d price=%v, want 0 and 11", updated.Stock, updated.Price)
	}
	if got, _ := st.GetMedicine(ctx, m.ID); got.Stock != 0 {
		t.Errorf("stored stock = %d, want 0", got.Stock)
	}
}

func TestListMedicinesPaginates(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	for i := 0; i < catalog.PageSize+3; i++ {
		in := amoxicillin(fmt.Sprintf("%dmg", i))
		in.Name = ptr(fmt.Sprintf("Med %03d", i))
		if _, err := svc.CreateMedicine(ctx, in); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page, err := svc.ListMedicines(ctx, 2, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != int64(catalog.PageSize+3) || page.Pages != 2 || page.Page != 2 || len(page.Data) != 3 {
		t.Errorf("page = total %d pages %d page %d len %d", page.Total, page.Pages, page.Page, len(page.Data))
	}

	first, _ := svc.ListMedicines(ctx, 0, "med 00")
	if first.Page != 1 || first.Total != 10 {
		t.Errorf("filtered page = page %d total %d", first.Page, first.Total)
	}
}

func TestSearchMedicines(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	if _, err := svc.CreateMedicine(ctx, amoxicillin("500mg")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SearchMedicines(ctx, "   "); !catalog.IsValidation(err) {
		t.Errorf("blank query: err = %v", err)
	}
	found, err := svc.SearchMedicines(ctx, "amoXI")
	if err != nil || len(found) != 1 {
		t.Errorf("found = %d, err = %v", len(found), err)
	}
}

func TestLowStock(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	in := amoxicillin("500mg")
	in.Stock = ptr(int64(20))
	if _, err := svc.CreateMedicine(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	low, err := svc.LowStock(ctx)
	if err != nil || len(low) != 1 {
		t.Errorf("stock equal to minimum should be low: %d, %v", len(low), err)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.CreateCategory(ctx, catalog.CategoryInput{Name: ptr(" ")}); !catalog.IsValidation(err) {
		t.Errorf("blank name: err = %v", err)
	}
	if _, err := svc.CreateCategory(ctx, catalog.CategoryInput{Name: ptr("Antibiotics")}); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("duplicate: err = %v", err)
	}

	c, err := svc.CreateCategory(ctx, catalog.CategoryInput{Name: ptr("Vitamins"), Description: ptr("Supplements")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	c, err = svc.UpdateCategory(ctx, c.ID, catalog.CategoryInput{Description: ptr("Daily supplements")})
	if err != nil || c.Name != "Vitamins" || c.Description != "Daily supplements" {
		t.Errorf("update = %+v, %v", c, err)
	}
	if _, err := svc.UpdateCategory(ctx, c.ID, catalog.CategoryInput{Name: ptr("Antibiotics")}); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("rename onto existing: err = %v", err)
	}

	in := amoxicillin("1000mg")
	in.Category = nil
	in.CategoryID = &c.ID
	m, err := svc.CreateMedicine(ctx, in)
	if err != nil {
		t.Fatalf("create medicine: %v", err)
	}
	if err := svc.DeleteCategory(ctx, c.ID); !errors.Is(err, store.ErrInUse) {
		t.Errorf("delete in use: err = %v", err)
	}
	svc.DeleteMedicine(ctx, m.ID)
	if err := svc.DeleteCategory(ctx, c.ID); err != nil {
		t.Errorf("delete: %v", err)
	}

	list, _ := svc.ListCategories(ctx)
	if len(list) != 1 {
		t.Errorf("categories = %+v", list)
	}
}
