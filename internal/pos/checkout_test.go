package pos_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pharmapos/m/domain"
	"pharmapos/m/internal/cart"
	"pharmapos/m/internal/pos"
	"pharmapos/m/internal/store"
	"pharmapos/m/internal/store/storetest"
)

var cashier = domain.User{ID: 7, Username: "ana", Role: domain.RoleCashier}

func newService(t *testing.T) (*pos.Service, *store.Store) {
	t.Helper()
	st := storetest.New(t)
	return pos.New(st, cart.NewRegistry(), 10), st
}

func cashPayment() pos.CheckoutRequest {
	return pos.CheckoutRequest{PaymentMethod: domain.PaymentCash, AmountTendered: 100}
}

func TestCheckoutCommitsSale(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "Amoxicillin", "500mg", 12.99, 10, 2)
	b := storetest.Medicine(t, st, c, "Ibuprofen", "200mg", 8.99, 5, 2)

	if _, err := svc.AddToCart(ctx, cashier.ID, a.ID, 2); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if _, err := svc.AddToCart(ctx, cashier.ID, b.ID, 1); err != nil {
		t.Fatalf("add b: %v", err)
	}

	txn, err := svc.Checkout(ctx, cashier.ID, cashier, cashPayment())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if txn.Subtotal != 34.97 || txn.Tax != 3.497 || txn.Total != 38.467 {
		t.Errorf("totals = %v / %v / %v", txn.Subtotal, txn.Tax, txn.Total)
	}
	if txn.Change != 61.533 {
		t.Errorf("change = %v, want 61.533", txn.Change)
	}
	if txn.PaymentStatus != domain.PaymentPaid || txn.Cashier != "ana" || txn.ID == "" {
		t.Errorf("transaction = %+v", txn)
	}
	if len(svc.Cart(cashier.ID)) != 0 {
		t.Error("cart should be cleared after checkout")
	}

	if got, _ := st.GetMedicine(ctx, a.ID); got.Stock != 8 {
		t.Errorf("stock of a = %d, want 8", got.Stock)
	}
	if got, _ := st.GetMedicine(ctx, b.ID); got.Stock != 4 {
		t.Errorf("stock of b = %d, want 4", got.Stock)
	}

	entries, err := svc.ListStockEntries(ctx, nil)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ledger has %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Type != domain.StockOut || e.Reason != "Sale - Transaction ID: "+txn.ID {
			t.Errorf("ledger entry = %+v", e)
		}
	}

	stored, err := st.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if len(stored.Items) != 2 || stored.Items[0].Name != "Amoxicillin" || stored.Items[0].Quantity != 2 {
		t.Errorf("stored items = %+v", stored.Items)
	}
}

func TestCheckoutItemsAreDetachedFromCart(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 2, 10, 0)

	svc.AddToCart(ctx, cashier.ID, a.ID, 1)
	txn, err := svc.Checkout(ctx, cashier.ID, cashier, cashPayment())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	svc.AddToCart(ctx, cashier.ID, a.ID, 5)

	if txn.Items[0].Quantity != 1 {
		t.Errorf("transaction item changed with cart: %+v", txn.Items[0])
	}
}

func TestCheckoutRejectsEmptyCartAndBadMethod(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	if _, err := svc.Checkout(ctx, cashier.ID, cashier, cashPayment()); !errors.Is(err, pos.ErrEmptyCart) {
		t.Errorf("empty cart: err = %v", err)
	}

	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 2, 10, 0)
	svc.AddToCart(ctx, cashier.ID, a.ID, 1)
	req := cashPayment()
	req.PaymentMethod = "Cheque"
	if _, err := svc.Checkout(ctx, cashier.ID, cashier, req); !errors.Is(err, pos.ErrInvalidPaymentMethod) {
		t.Errorf("bad method: err = %v", err)
	}
	if len(svc.Cart(cashier.ID)) != 1 {
		t.Error("rejected checkout should keep the cart")
	}
}

func TestCheckoutRejectsShortTenderAtCommitTimeRate(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	if err := st.SaveSettings(ctx, &domain.Settings{Currency: "USD", TaxRate: 0}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 10, 5, 0)
	svc.AddToCart(ctx, cashier.ID, a.ID, 1)

	q, err := svc.Quote(ctx, cashier.ID, 0)
	if err != nil || q.Total != 10 {
		t.Fatalf("quote = %+v, err = %v", q, err)
	}
	// The rate goes up after the quote; the tender that covered the quote
	// no longer covers the sale.
	if err := st.SaveSettings(ctx, &domain.Settings{Currency: "USD", TaxRate: 10}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	req := cashPayment()
	req.AmountTendered = q.Total
	if _, err := svc.Checkout(ctx, cashier.ID, cashier, req); !errors.Is(err, pos.ErrInsufficientTender) {
		t.Fatalf("err = %v, want ErrInsufficientTender", err)
	}
	if len(svc.Cart(cashier.ID)) != 1 {
		t.Error("rejected checkout should keep the cart")
	}
	if got, _ := st.GetMedicine(ctx, a.ID); got.Stock != 5 {
		t.Errorf("stock = %d, want 5", got.Stock)
	}

	req.AmountTendered = 11
	txn, err := svc.Checkout(ctx, cashier.ID, cashier, req)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if txn.Total != 11 || txn.Change != 0 {
		t.Errorf("total = %v, change = %v", txn.Total, txn.Change)
	}
}

func TestCheckoutUsesSettingsTaxRate(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	if err := st.SaveSettings(ctx, &domain.Settings{StoreName: "PharmaCare", Currency: "USD", TaxRate: 5}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 20, 10, 0)
	svc.AddToCart(ctx, cashier.ID, a.ID, 1)

	q, err := svc.Quote(ctx, cashier.ID, 1)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.TaxRate != 5 || q.Tax != 1 || q.Total != 20 {
		t.Errorf("quote = %+v", q)
	}
}

func TestCheckoutInsufficientStockKeepsCart(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 2, 1, 0)

	svc.AddToCart(ctx, cashier.ID, a.ID, 3)
	_, err := svc.Checkout(ctx, cashier.ID, cashier, cashPayment())
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if lines := svc.Cart(cashier.ID); len(lines) != 1 || lines[0].Quantity != 3 {
		t.Errorf("cart = %+v", lines)
	}
	if got, _ := st.GetMedicine(ctx, a.ID); got.Stock != 1 {
		t.Errorf("stock = %d, want 1", got.Stock)
	}
}

func TestCheckoutSkipsDeletedProduct(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	c := storetest.Category(t, st, "General")
	a := storetest.Medicine(t, st, c, "A", "1mg", 2, 10, 0)
	gone := storetest.Medicine(t, st, c, "Gone", "1mg", 3, 10, 0)

	svc.AddToCart(ctx, cashier.ID, a.ID, 1)
	svc.AddToCart(ctx, cashier.ID, gone.ID, 1)
	if err := st.DeleteMedicine(ctx, gone.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	txn, err := svc.Checkout(ctx, cashier.ID, cashier, cashPayment())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(txn.Items) != 2 || txn.Subtotal != 5 {
		t.Errorf("transaction = %+v", txn)
	}
	entries, _ := svc.ListStockEntries(ctx, nil)
	if len(entries) != 1 || entries[0].MedicineID != a.ID {
		t.Errorf("ledger = %+v", entries)
	}
	if len(svc.Cart(cashier.ID)) != 0 {
		t.Error("cart should be cleared")
	}
}

func TestConcurrentCheckoutOfLastUnit(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	c := storetest.Category(t, st, "General")
	last := storetest.Medicine(t, st, c, "Last", "1mg", 4, 1, 0)

	sessions := []int64{1, 2}
	for _, s := range sessions {
		if _, err := svc.AddToCart(ctx, s, last.ID, 1); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	errs := make([]error, len(sessions))
	var wg sync.WaitGroup
	for i, s := range sessions {
		wg.Add(1)
		go func(i int, s int64) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(ctx, s, domain.User{ID: s, Username: "cashier"}, cashPayment())
		}(i, s)
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, store.ErrInsufficientStock):
			short++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || short != 1 {
		t.Errorf("successes = %d, insufficient = %d; want 1 and 1", ok, short)
	}
	if got, _ := st.GetMedicine(ctx, last.ID); got.Stock != 0 {
		t.Errorf("stock = %d, want 0", got.Stock)
	}
}
