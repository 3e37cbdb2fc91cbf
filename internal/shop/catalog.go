package shop

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/rogerio-castellano/storefront/internal/models"
	"go.uber.org/zap"
)

// Search returns the products whose name, category or description contains term,
// ignoring case. A blank term returns the whole catalog. No match yields an empty slice.
func (s *Shop) Search(term string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	matches := []models.Product{}
	for _, p := range s.catalog {
		if matchesTerm(p, term) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func matchesTerm(p models.Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Category), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

func (s *Shop) Product(id int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return models.Product{}, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	return s.catalog[i], nil
}

// BuyNow purchases a single unit straight from the catalog, bypassing the cart.
func (s *Shop) BuyNow(ctx context.Context, id int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return models.Product{}, err
	}

	i := s.indexOf(id)
	if i < 0 {
		s.recorder.Rejection("unknown_product")
		return models.Product{}, ErrProductNotFound
	}
	if s.catalog[i].OutOfStock() {
		s.recorder.Rejection("out_of_stock")
		return models.Product{}, errors.Wrap(ErrOutOfStock, s.catalog[i].Name)
	}

	catalog := cloneCatalog(s.catalog)
	catalog[i].Stock--
	if err := s.catalogSnap.Save(ctx, catalog); err != nil {
		return models.Product{}, errors.Wrap(err, "save catalog snapshot")
	}
	s.catalog = catalog

	bought := catalog[i]
	s.recorder.Checkout(1)
	s.logger.Info("bought one unit",
		zap.Int("product_id", bought.ID),
		zap.String("name", bought.Name),
		zap.Int("stock", bought.Stock))
	s.warnLowStock(bought)
	return bought, nil
}

// Restock adjusts a product's stock by delta. The result may not go below zero.
func (s *Shop) Restock(ctx context.Context, id, delta int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return models.Product{}, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	stock, err := addQuantity(s.catalog[i].Stock, delta)
	if err != nil {
		return models.Product{}, err
	}
	if stock < 0 {
		return models.Product{}, ErrInvalidStockChange
	}

	catalog := cloneCatalog(s.catalog)
	catalog[i].Stock = stock
	if err := s.catalogSnap.Save(ctx, catalog); err != nil {
		return models.Product{}, errors.Wrap(err, "save catalog snapshot")
	}
	s.catalog = catalog

	s.logger.Info("stock adjusted",
		zap.Int("product_id", id),
		zap.Int("delta", delta),
		zap.Int("stock", catalog[i].Stock))
	return catalog[i], nil
}

func cloneCatalog(catalog []models.Product) []models.Product {
	return append([]models.Product(nil), catalog...)
}
