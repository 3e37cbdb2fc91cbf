// Package source reads the static product list the catalog is seeded from.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Fetcher returns the full static product list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]models.Product, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]models.Product, error) {
	return f(ctx)
}

const maxSourceBytes = 10 << 20

// Static fetches the product list from a file path or an http(s) URL.
type Static struct {
	Location string
	Client   *http.Client
}

// New returns a Static source for location using a client with the given timeout.
func New(location string, timeout time.Duration) *Static {
	return &Static{
		Location: location,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (s *Static) Fetch(ctx context.Context) ([]models.Product, error) {
	var (
		data []byte
		err  error
		name string
	)
	if isURL(s.Location) {
		data, err = s.fetchURL(ctx)
		name = urlPath(s.Location)
	} else {
		data, err = os.ReadFile(s.Location)
		name = s.Location
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.Location)
	}

	products, err := Decode(data, formatOf(name))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.Location)
	}
	return products, nil
}

func (s *Static) fetchURL(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func urlPath(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	return path.Base(location)
}

// yamlProduct keeps the price as text so it reaches decimal without a float round trip.
type yamlProduct struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Stock       int    `yaml:"stock"`
	Details     struct {
		Manufacturer string `yaml:"manufacturer"`
		ExpiryDate   string `yaml:"expiry_date"`
		Dosage       string `yaml:"dosage"`
		Form         string `yaml:"form"`
	} `yaml:"details"`
}

// Decode parses and validates a product list.
func Decode(data []byte, format Format) ([]models.Product, error) {
	var products []models.Product
	switch format {
	case FormatYAML:
		var records []yamlProduct
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, err
		}
		products = make([]models.Product, 0, len(records))
		for _, r := range records {
			price := decimal.Zero
			if r.Price != "" {
				p, err := decimal.NewFromString(r.Price)
				if err != nil {
					return nil, errors.Wrapf(err, "product %d: price", r.ID)
				}
				price = p
			}
			products = append(products, models.Product{
				ID:          r.ID,
				Name:        r.Name,
				Category:    r.Category,
				Description: r.Description,
				Price:       price,
				Stock:       r.Stock,
				Details: models.ProductDetails{
					Manufacturer: r.Details.Manufacturer,
					ExpiryDate:   r.Details.ExpiryDate,
					Dosage:       r.Details.Dosage,
					Form:         r.Details.Form,
				},
			})
		}
	default:
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, err
		}
	}

	if err := Validate(products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

var ErrInvalidProduct = errors.New("invalid product")

// Validate rejects duplicated ids, negative prices and negative stock.
func Validate(products []models.Product) error {
	seen := make(map[int]struct{}, len(products))
	for _, p := range products {
		if p.ID <= 0 {
			return errors.Wrapf(ErrInvalidProduct, "product id %d must be positive", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return errors.Wrapf(ErrInvalidProduct, "duplicated id %d", p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Price.IsNegative() {
			return errors.Wrapf(ErrInvalidProduct, "product %d has a negative price", p.ID)
		}
		if p.Stock < 0 {
			return errors.Wrapf(ErrInvalidProduct, "product %d has negative stock", p.ID)
		}
	}
	return nil
}
