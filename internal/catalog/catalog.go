// Package catalog validates and serves medicine and category records.
package catalog

import (
	"context"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
)

const (
	PageSize    = 50
	SearchLimit = 100
)

// ErrDuplicateMedicine is returned when a medicine with the same name and
// strength already exists.
var ErrDuplicateMedicine = errors.New("medicine with this name and strength already exists")

// ValidationError describes a rejected request field.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// Store is the persistence the catalog needs. *store.Store satisfies it.
type Store interface {
	CreateMedicine(ctx context.Context, m *domain.Medicine) error
	GetMedicine(ctx context.Context, id int64) (domain.Medicine, error)
	MedicineExists(ctx context.Context, name, strength string) (bool, error)
	ListMedicines(ctx context.Context, search string, limit, offset int) ([]domain.Medicine, int64, error)
	SearchMedicines(ctx context.Context, query string, limit int) ([]domain.Medicine, error)
	ListLowStock(ctx context.Context) ([]domain.Medicine, error)
	UpdateMedicine(ctx context.Context, m *domain.Medicine, setStock bool) error
	DeleteMedicine(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, c *domain.Category) error
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	GetCategoryByName(ctx context.Context, name string) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// Service implements catalog operations on top of a Store.
type Service struct {
	store Store
}

func New(st Store) *Service {
	return &Service{store: st}
}
