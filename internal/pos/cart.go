package pos

import (
	"context"

	"pharmapos/m/internal/cart"
)

// Cart returns the lines of the session's cart.
func (s *Service) Cart(session int64) []cart.Line {
	return s.carts.Get(session).Lines()
}

// AddToCart looks up the product and adds qty units of it to the session's
// cart.
func (s *Service) AddToCart(ctx context.Context, session, productID, qty int64) ([]cart.Line, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	p, err := s.store.GetMedicine(ctx, productID)
	if err != nil {
		return nil, err
	}
	c := s.carts.Get(session)
	c.Add(p, qty)
	return c.Lines(), nil
}

// UpdateCartItem sets a line's quantity; zero or less removes it.
func (s *Service) UpdateCartItem(session, productID, qty int64) []cart.Line {
	c := s.carts.Get(session)
	c.Update(productID, qty)
	return c.Lines()
}

// RemoveFromCart drops a line.
func (s *Service) RemoveFromCart(session, productID int64) []cart.Line {
	c := s.carts.Get(session)
	c.Remove(productID)
	return c.Lines()
}

// ClearCart empties the session's cart.
func (s *Service) ClearCart(session int64) {
	s.carts.Get(session).Clear()
}

// Quote prices the session's cart without committing anything.
func (s *Service) Quote(ctx context.Context, session int64, discount float64) (Totals, error) {
	rate, err := s.TaxRate(ctx)
	if err != nil {
		return Totals{}, err
	}
	return ComputeTotals(s.carts.Get(session).Lines(), rate, discount), nil
}
