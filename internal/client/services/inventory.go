package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/store"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
)

const productsPath = "/productos"

// InventoryService manages products. Unlike the other views every change
// waits for the server and is followed by a full reload.
type InventoryService interface {
	Load(ctx context.Context) error
	Reset()
	Products() []models.Product
	Product(id int64) (models.Product, bool)
	Count() int
	Create(ctx context.Context, name, price string) error
	Update(ctx context.Context, id int64, name, price string) error
	Delete(ctx context.Context, id int64) error
}

type inventoryService struct {
	api    API
	store  *store.Store[models.Product]
	logger logging.Logger
}

func NewInventoryService(api API, logger logging.Logger) InventoryService {
	s := &inventoryService{api: api, logger: logger.With("component", "inventory")}
	s.store = store.New[models.Product](s.fetch)
	return s
}

func (s *inventoryService) fetch(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := s.api.JSON(ctx, http.MethodGet, productsPath, nil, &out); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return out, nil
}

func (s *inventoryService) Load(ctx context.Context) error { return s.store.Load(ctx) }

func (s *inventoryService) Reset() { s.store.Reset() }

func (s *inventoryService) Products() []models.Product { return s.store.All() }

func (s *inventoryService) Product(id int64) (models.Product, bool) { return s.store.Get(id) }

func (s *inventoryService) Count() int { return s.store.Len() }

// ParseProduct validates the product form: a name and a non-negative
// numeric price are required.
func ParseProduct(name, price string) (models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Product{}, invalid("nombre", "product name is required")
	}
	price = strings.TrimSpace(price)
	if price == "" {
		return models.Product{}, invalid("precio", "product price is required")
	}
	v, err := strconv.ParseFloat(price, 64)
	if err != nil || v < 0 {
		return models.Product{}, invalid("precio", "invalid price %q", price)
	}
	return models.Product{Name: name, Price: v}, nil
}

func (s *inventoryService) Create(ctx context.Context, name, price string) error {
	p, err := ParseProduct(name, price)
	if err != nil {
		return err
	}
	if _, err := send(ctx, s.api, http.MethodPost, productsPath, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return s.store.Load(ctx)
}

func (s *inventoryService) Update(ctx context.Context, id int64, name, price string) error {
	p, err := ParseProduct(name, price)
	if err != nil {
		return err
	}
	p.ID = id
	if _, err := send(ctx, s.api, http.MethodPut, itemPath(productsPath, id), p); err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return s.store.Load(ctx)
}

func (s *inventoryService) Delete(ctx context.Context, id int64) error {
	if _, err := send(ctx, s.api, http.MethodDelete, itemPath(productsPath, id), nil); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return s.store.Load(ctx)
}
