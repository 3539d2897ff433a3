// Package storetest opens migrated in-memory stores for tests.
package storetest

import (
	"context"
	"testing"

	"pharmapos/m/domain"
	"pharmapos/m/internal/database"
	"pharmapos/m/internal/migrations"
	"pharmapos/m/internal/store"
)

// New returns a Store over a fresh in-memory SQLite database.
func New(t testing.TB) *store.Store {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

// Category inserts a category named name.
func Category(t testing.TB, s *store.Store, name string) domain.Category {
	t.Helper()
	c := domain.Category{Name: name}
	if err := s.CreateCategory(context.Background(), &c); err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return c
}

// Medicine inserts a medicine in category with the given price and stock.
func Medicine(t testing.TB, s *store.Store, category domain.Category, name, strength string, price float64, stock, minStock int64) domain.Medicine {
	t.Helper()
	m := domain.Medicine{
		Name:       name,
		CategoryID: category.ID,
		Category:   category.Name,
		DosageForm: "Tablet",
		Strength:   strength,
		Price:      price,
		Stock:      stock,
		MinStock:   minStock,
	}
	if err := s.CreateMedicine(context.Background(), &m); err != nil {
		t.Fatalf("create medicine %s: %v", name, err)
	}
	return m
}
