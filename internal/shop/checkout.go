package shop

import (
	"context"

	"github.com/rogerio-castellano/storefront/internal/models"
	"go.uber.org/zap"
)

// Checkout decrements stock by each line's quantity, floored at zero, and empties the cart.
// Both snapshots are written together; on failure nothing changes. Lines for products no
// longer in the catalog are ignored.
func (s *Shop) Checkout(ctx context.Context) (models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return models.Receipt{}, err
	}

	if len(s.cart) == 0 {
		s.recorder.Rejection("empty_cart")
		return models.Receipt{}, ErrEmptyCart
	}

	lines, summary := render(s.catalog, s.cart)

	catalog := cloneCatalog(s.catalog)
	touched := make([]int, 0, len(s.cart))
	for _, line := range s.cart {
		for i := range catalog {
			if catalog[i].ID != line.ProductID {
				continue
			}
			catalog[i].Stock = max(catalog[i].Stock-line.Quantity, 0)
			touched = append(touched, i)
			break
		}
	}

	cart := []models.CartLine{}
	if err := s.saveBoth(ctx, catalog, cart); err != nil {
		s.logger.Error("checkout failed", zap.Error(err))
		return models.Receipt{}, err
	}
	s.catalog, s.cart = catalog, cart

	receipt := models.Receipt{
		ID:         s.newID(),
		Lines:      lines,
		Total:      summary.Subtotal,
		TotalUnits: summary.TotalUnits,
		CreatedAt:  s.now().UTC(),
	}
	s.recorder.Checkout(receipt.TotalUnits)
	s.recorder.CartMutation("checkout")
	s.recorder.CartLines(0)
	s.logger.Info("checkout completed",
		zap.String("receipt_id", receipt.ID),
		zap.String("total", receipt.Total.StringFixed(2)),
		zap.Int("units", receipt.TotalUnits))
	for _, i := range touched {
		s.warnLowStock(catalog[i])
	}
	return receipt, nil
}
