package shop

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Add puts one unit of a product in the cart, merging with an existing line.
// Stock is checked but not reserved.
func (s *Shop) Add(ctx context.Context, id int) (models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return models.CartLine{}, err
	}

	i := s.indexOf(id)
	if i < 0 {
		s.recorder.Rejection("unknown_product")
		return models.CartLine{}, ErrProductNotFound
	}
	if s.catalog[i].OutOfStock() {
		s.recorder.Rejection("out_of_stock")
		return models.CartLine{}, errors.Wrap(ErrOutOfStock, s.catalog[i].Name)
	}

	cart := cloneCart(s.cart)
	j := lineIndex(cart, id)
	if j >= 0 {
		qty, err := addQuantity(cart[j].Quantity, 1)
		if err != nil {
			return models.CartLine{}, err
		}
		cart[j].Quantity = qty
	} else {
		cart = append(cart, models.CartLine{ProductID: id, Quantity: 1})
		j = len(cart) - 1
	}
	if err := s.commitCart(ctx, "add", cart); err != nil {
		return models.CartLine{}, err
	}
	return cart[j], nil
}

// ChangeQuantity adds delta to a line's quantity and drops the line when the result is
// zero or less. The returned bool reports whether the line was removed.
func (s *Shop) ChangeQuantity(ctx context.Context, id, delta int) (models.CartLine, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return models.CartLine{}, false, err
	}

	cart := cloneCart(s.cart)
	j := lineIndex(cart, id)
	if j < 0 {
		return models.CartLine{}, false, ErrCartLineNotFound
	}

	qty, err := addQuantity(cart[j].Quantity, delta)
	if err != nil {
		return models.CartLine{}, false, err
	}
	cart[j].Quantity = qty
	line := cart[j]
	removed := line.Quantity <= 0
	if removed {
		cart = append(cart[:j], cart[j+1:]...)
	}
	if err := s.commitCart(ctx, "change_quantity", cart); err != nil {
		return models.CartLine{}, false, err
	}
	return line, removed, nil
}

// Remove deletes the line for a product. Removing an absent line is not an error.
func (s *Shop) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	cart := make([]models.CartLine, 0, len(s.cart))
	for _, line := range s.cart {
		if line.ProductID != id {
			cart = append(cart, line)
		}
	}
	return s.commitCart(ctx, "remove", cart)
}

// Clear empties the cart once the caller confirmed it.
func (s *Shop) Clear(ctx context.Context, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	if len(s.cart) == 0 {
		s.recorder.Rejection("empty_cart")
		return ErrEmptyCart
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.commitCart(ctx, "clear", []models.CartLine{})
}

func (s *Shop) commitCart(ctx context.Context, op string, cart []models.CartLine) error {
	if err := s.cartSnap.Save(ctx, cart); err != nil {
		s.logger.Error("failed to persist cart", zap.String("op", op), zap.Error(err))
		return errors.Wrap(err, "save cart snapshot")
	}
	s.cart = cart
	s.recorder.CartMutation(op)
	s.recorder.CartLines(len(cart))
	return nil
}

// Cart renders the cart lines joined with the catalog together with their summary.
func (s *Shop) Cart() ([]models.LineView, models.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, models.Summary{}, err
	}

	lines, summary := render(s.catalog, s.cart)
	return lines, summary, nil
}

func (s *Shop) Summary() (models.Summary, error) {
	_, summary, err := s.Cart()
	return summary, err
}

// Lines returns a copy of the raw cart lines.
func (s *Shop) Lines() ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return cloneCart(s.cart), nil
}

// render skips lines whose product is missing from the catalog; they count toward
// LineCount only.
func render(catalog []models.Product, cart []models.CartLine) ([]models.LineView, models.Summary) {
	byID := make(map[int]models.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	lines := make([]models.LineView, 0, len(cart))
	summary := models.Summary{Subtotal: decimal.Zero, LineCount: len(cart)}
	for _, line := range cart {
		p, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, models.LineView{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		summary.Subtotal = summary.Subtotal.Add(subtotal)
		summary.UniqueItems++
		summary.TotalUnits += line.Quantity
	}
	return lines, summary
}

func lineIndex(cart []models.CartLine, id int) int {
	for i, line := range cart {
		if line.ProductID == id {
			return i
		}
	}
	return -1
}

func cloneCart(cart []models.CartLine) []models.CartLine {
	return append([]models.CartLine{}, cart...)
}
