package pos_test

import (
	"context"
	"errors"
	"testing"

	"pharmapos/m/domain"
	"pharmapos/m/internal/pos"
	"pharmapos/m/internal/store"
	"pharmapos/m/internal/store/storetest"
)

func TestAddToCartValidates(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	if _, err := svc.AddToCart(ctx, 1, 42, 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown product: err = %v", err)
	}
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 2, 0, 0)
	if _, err := svc.AddToCart(ctx, 1, a.ID, 0); !errors.Is(err, pos.ErrInvalidQuantity) {
		t.Errorf("zero quantity: err = %v", err)
	}

	lines, err := svc.AddToCart(ctx, 1, a.ID, 3)
	if err != nil {
		t.Fatalf("out of stock product should still be added: %v", err)
	}
	if len(lines) != 1 || lines[0].Subtotal != 6 {
		t.Errorf("lines = %+v", lines)
	}
}

func TestCartEditing(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 2, 10, 0)
	b := storetest.Medicine(t, st, c, "B", "1mg", 3, 10, 0)
	svc.AddToCart(ctx, 1, a.ID, 1)
	svc.AddToCart(ctx, 1, b.ID, 1)

	if lines := svc.UpdateCartItem(1, a.ID, 4); lines[0].Quantity != 4 || lines[0].Subtotal != 8 {
		t.Errorf("update: %+v", lines)
	}
	if lines := svc.UpdateCartItem(1, a.ID, -1); len(lines) != 1 || lines[0].Product.ID != b.ID {
		t.Errorf("update to negative: %+v", lines)
	}
	if lines := svc.RemoveFromCart(1, b.ID); len(lines) != 0 {
		t.Errorf("remove: %+v", lines)
	}
	svc.AddToCart(ctx, 1, a.ID, 1)
	svc.ClearCart(1)
	if len(svc.Cart(1)) != 0 {
		t.Error("clear left lines behind")
	}
}

func TestAddStockEntryValidates(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 2, 4, 5)

	bad := domain.StockEntry{MedicineID: a.ID, Quantity: 1, Type: "transfer"}
	if err := svc.AddStockEntry(ctx, &bad); !errors.Is(err, pos.ErrInvalidStockType) {
		t.Errorf("bad type: err = %v", err)
	}
	zero := domain.StockEntry{MedicineID: a.ID, Quantity: 0, Type: domain.StockIn}
	if err := svc.AddStockEntry(ctx, &zero); !errors.Is(err, pos.ErrInvalidQuantity) {
		t.Errorf("zero quantity: err = %v", err)
	}

	out := domain.StockEntry{MedicineID: a.ID, Quantity: 2, Type: "OUT", Reason: "Expired"}
	if err := svc.AddStockEntry(ctx, &out); err != nil {
		t.Fatalf("out entry: %v", err)
	}
	if got, _ := st.GetMedicine(ctx, a.ID); got.Stock != 4 {
		t.Errorf("out entry changed stock to %d", got.Stock)
	}

	in := domain.StockEntry{MedicineID: a.ID, Quantity: 6, Type: domain.StockIn}
	if err := svc.AddStockEntry(ctx, &in); err != nil {
		t.Fatalf("in entry: %v", err)
	}
	got, _ := st.GetMedicine(ctx, a.ID)
	if got.Stock != 10 || got.LowStock() {
		t.Errorf("after restock: stock=%d low=%v", got.Stock, got.LowStock())
	}

	only, err := svc.ListStockEntries(ctx, &a.ID)
	if err != nil || len(only) != 2 {
		t.Errorf("entries = %d, err = %v", len(only), err)
	}
}
