package seed

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"pharmapos/m/internal/catalog"
	"pharmapos/m/internal/store"
)

// medicineRow is one line of the catalog CSV. The header names the columns.
type medicineRow struct {
	Name           string  `csv:"name"`
	Category       string  `csv:"category"`
	DosageForm     string  `csv:"dosage_form"`
	Strength       string  `csv:"strength"`
	Manufacturer   string  `csv:"manufacturer"`
	Indication     string  `csv:"indication"`
	Classification string  `csv:"classification"`
	Price          float64 `csv:"price"`
	Cost           string  `csv:"cost"`
	Stock          int64   `csv:"stock"`
	MinStock       int64   `csv:"min_stock"`
	Barcode        string  `csv:"barcode"`
	SKU            string  `csv:"sku"`
}

// LoadMedicinesFile imports the CSV at path. See LoadMedicines.
func LoadMedicinesFile(ctx context.Context, svc *catalog.Service, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open medicine catalog %s", path)
	}
	defer file.Close()
	return LoadMedicines(ctx, svc, file)
}

// LoadMedicines adds every medicine in the CSV, creating missing categories.
// Rows that duplicate an existing name and strength, or fail validation, are
// skipped. It returns the number of medicines created.
func LoadMedicines(ctx context.Context, svc *catalog.Service, r io.Reader) (int, error) {
	var rows []*medicineRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, errors.Wrap(err, "read medicine catalog")
	}

	known := map[string]bool{}
	created := 0
	for i, row := range rows {
		if row.Category != "" && !known[row.Category] {
			category := row.Category
			_, err := svc.CreateCategory(ctx, catalog.CategoryInput{Name: &category})
			if err != nil && !errors.Is(err, store.ErrDuplicate) {
				return created, err
			}
			known[row.Category] = true
		}

		in, err := row.input()
		if err == nil {
			_, err = svc.CreateMedicine(ctx, in)
		}
		switch {
		case err == nil:
			created++
		case errors.Is(err, catalog.ErrDuplicateMedicine):
		case catalog.IsValidation(err):
			log.Warn().Int("row", i+2).Str("name", row.Name).Err(err).Msg("skipping medicine")
		default:
			return created, err
		}
	}

	log.Info().Int("rows", created).Msg("seeded medicine catalog")
	return created, nil
}

func (row *medicineRow) input() (catalog.MedicineInput, error) {
	in := catalog.MedicineInput{
		Name:           &row.Name,
		DosageForm:     &row.DosageForm,
		Strength:       &row.Strength,
		Manufacturer:   &row.Manufacturer,
		Indication:     &row.Indication,
		Classification: &row.Classification,
		Price:          &row.Price,
		Stock:          &row.Stock,
		MinStock:       &row.MinStock,
		Barcode:        &row.Barcode,
		SKU:            &row.SKU,
	}
	if row.Category != "" {
		in.Category = &row.Category
	}
	if c := strings.TrimSpace(row.Cost); c != "" {
		cost, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return in, catalog.ValidationError("cost must be a number")
		}
		in.Cost = &cost
	}
	return in, nil
}
