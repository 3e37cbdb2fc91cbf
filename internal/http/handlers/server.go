package handlers

import (
	"context"

	"github.com/rogerio-castellano/storefront/internal/auth"
	"github.com/rogerio-castellano/storefront/internal/models"
	"go.uber.org/zap"
)

// Shop is the storefront state the handlers render and mutate.
type Shop interface {
	Search(term string) ([]models.Product, error)
	Product(id int) (models.Product, error)
	BuyNow(ctx context.Context, id int) (models.Product, error)
	Add(ctx context.Context, id int) (models.CartLine, error)
	ChangeQuantity(ctx context.Context, id, delta int) (models.CartLine, bool, error)
	Remove(ctx context.Context, id int) error
	Clear(ctx context.Context, confirmed bool) error
	Cart() ([]models.LineView, models.Summary, error)
	Checkout(ctx context.Context) (models.Receipt, error)
	Restock(ctx context.Context, id, delta int) (models.Product, error)
	ResetCatalog(ctx context.Context) error
}

type Handlers struct {
	shop   Shop
	tokens *auth.Tokens
	admin  *auth.Admin
	logger *zap.Logger
}

func New(shop Shop, tokens *auth.Tokens, admin *auth.Admin, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		shop:   shop,
		tokens: tokens,
		admin:  admin,
		logger: logger,
	}
}
