// Package shop owns the catalog and cart state and persists both as snapshots.
package shop

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/source"
	"go.uber.org/zap"
)

type Options struct {
	Store  repo.SnapshotStore
	Source source.Fetcher
	// KeyPrefix namespaces the catalog and cart snapshot keys.
	KeyPrefix string
	Logger    *zap.Logger
	Recorder  Recorder
	// LowStockThreshold logs a warning when a purchase leaves stock below it.
	LowStockThreshold int
}

// Shop is the single owner of the in-memory catalog and cart. Every mutation writes the
// affected snapshots before the in-memory state changes.
type Shop struct {
	mu sync.Mutex

	store       repo.SnapshotStore
	source      source.Fetcher
	catalogSnap *repo.Snapshot[[]models.Product]
	cartSnap    *repo.Snapshot[[]models.CartLine]
	logger      *zap.Logger
	recorder    Recorder
	lowStock    int

	now   func() time.Time
	newID func() string

	loaded  bool
	catalog []models.Product
	cart    []models.CartLine
}

func New(opts Options) *Shop {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Shop{
		store:       opts.Store,
		source:      opts.Source,
		catalogSnap: repo.NewSnapshot[[]models.Product](opts.Store, repo.PrefixedKey(opts.KeyPrefix, repo.CatalogKey)),
		cartSnap:    repo.NewSnapshot[[]models.CartLine](opts.Store, repo.PrefixedKey(opts.KeyPrefix, repo.CartKey)),
		logger:      logger,
		recorder:    recorder,
		lowStock:    opts.LowStockThreshold,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// Load reads the catalog snapshot, or fetches the static source and persists it when no
// snapshot exists yet, then reads the cart snapshot. A fetch failure is not retried.
func (s *Shop) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, ok, err := s.catalogSnap.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load catalog snapshot")
	}
	if ok {
		s.logger.Debug("catalog loaded from snapshot", zap.Int("products", len(catalog)))
	} else {
		catalog, err = s.fetch(ctx)
		if err != nil {
			return err
		}
		if err := s.catalogSnap.Save(ctx, catalog); err != nil {
			return errors.Wrap(err, "save initial catalog snapshot")
		}
		s.logger.Info("catalog seeded from static source", zap.Int("products", len(catalog)))
	}

	cart, _, err := s.cartSnap.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load cart snapshot")
	}

	s.catalog = nonNil(catalog)
	s.cart = nonNil(cart)
	s.loaded = true
	s.recorder.CartLines(len(s.cart))
	return nil
}

func (s *Shop) fetch(ctx context.Context) ([]models.Product, error) {
	if s.source == nil {
		return nil, ErrCatalogUnavailable
	}
	products, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Error("failed to fetch static catalog", zap.Error(err))
		return nil, &FetchError{Err: err}
	}
	return products, nil
}

// ResetCatalog re-fetches the static source and replaces the catalog, emptying the cart in
// the same write.
func (s *Shop) ResetCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	catalog = nonNil(catalog)
	cart := []models.CartLine{}
	if err := s.saveBoth(ctx, catalog, cart); err != nil {
		return err
	}

	s.catalog, s.cart, s.loaded = catalog, cart, true
	s.recorder.CartLines(0)
	s.logger.Info("catalog reset from static source", zap.Int("products", len(catalog)))
	return nil
}

func (s *Shop) saveBoth(ctx context.Context, catalog []models.Product, cart []models.CartLine) error {
	catalogData, err := s.catalogSnap.Encode(catalog)
	if err != nil {
		return err
	}
	cartData, err := s.cartSnap.Encode(cart)
	if err != nil {
		return err
	}
	err = s.store.SaveAll(ctx, map[string][]byte{
		s.catalogSnap.Key(): catalogData,
		s.cartSnap.Key():    cartData,
	})
	if err != nil {
		return errors.Wrap(err, "save catalog and cart snapshots")
	}
	return nil
}

func (s *Shop) ensureLoaded() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (s *Shop) indexOf(id int) int {
	for i, p := range s.catalog {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Shop) warnLowStock(p models.Product) {
	if p.Stock < s.lowStock {
		s.logger.Warn("product below stock threshold",
			zap.Int("product_id", p.ID),
			zap.String("name", p.Name),
			zap.Int("stock", p.Stock),
			zap.Int("threshold", s.lowStock))
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
