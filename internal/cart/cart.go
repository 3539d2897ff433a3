// Package cart keeps the in-progress sale of each POS session in memory.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"pharmapos/m/domain"
)

// Line is one product in the cart. Product is a snapshot taken when the line
// was last added to.
type Line struct {
	Product  domain.Medicine `json:"product"`
	Quantity int64           `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

func newLine(p domain.Medicine, qty int64) Line {
	return Line{Product: p, Quantity: qty, Subtotal: lineSubtotal(p.Price, qty)}
}

func lineSubtotal(price float64, qty int64) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(qty)).InexactFloat64()
}

// Cart holds at most one line per product id. All methods are safe for
// concurrent use and never fail.
type Cart struct {
	mu    sync.Mutex
	order []int64
	lines map[int64]Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[int64]Line)}
}

// Add adds qty units of p. An existing line keeps its position, takes the
// new snapshot and has its quantity increased. Stock is not checked.
func (c *Cart) Add(p domain.Medicine, qty int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.lines[p.ID]; ok {
		qty += l.Quantity
	}
	c.set(p, qty)
}

// Update sets the quantity of the line for id. A quantity of zero or less
// removes the line.
func (c *Cart) Update(id, qty int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.lines[id]
	if !ok {
		return
	}
	c.set(l.Product, qty)
}

// Remove drops the line for id if present.
func (c *Cart) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(id)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.lines = make(map[int64]Line)
}

// Lines returns a copy of the lines in the order they were first added.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.lines[id])
	}
	return out
}

// Len reports the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Subtotal sums the line subtotals.
func (c *Cart) Subtotal() float64 {
	return Subtotal(c.Lines())
}

// Subtotal sums the subtotals of lines.
func Subtotal(lines []Line) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Subtotal))
	}
	return sum.InexactFloat64()
}

// set must be called with mu held.
func (c *Cart) set(p domain.Medicine, qty int64) {
	if qty <= 0 {
		c.remove(p.ID)
		return
	}
	if _, ok := c.lines[p.ID]; !ok {
		c.order = append(c.order, p.ID)
	}
	c.lines[p.ID] = newLine(p, qty)
}

func (c *Cart) remove(id int64) {
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Registry maps session keys to carts.
type Registry struct {
	mu    sync.Mutex
	carts map[int64]*Cart
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[int64]*Cart)}
}

// Get returns the cart for session, creating it on first use.
func (r *Registry) Get(session int64) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[session]
	if !ok {
		c = New()
		r.carts[session] = c
	}
	return c
}

// Drop forgets the cart for session.
func (r *Registry) Drop(session int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, session)
}
