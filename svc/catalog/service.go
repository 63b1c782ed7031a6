package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/pkg/sanitizer"
	"github.com/dmitrymomot/marketplace/pkg/validator"
)

const (
	maxNameLength        = 120
	maxDescriptionLength = 4000
)

// Service manages stores and products. Ownership of mutated products is
// enforced by the guard chain in front of it, not here.
type Service struct {
	storage Storage
	log     *slog.Logger
}

// Option configures Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates a Service.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{storage: storage, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cleanText(s string) string {
	return sanitizer.Apply(s, sanitizer.StripControl, sanitizer.NormalizeWhitespace, sanitizer.Trim)
}

// CreateStore opens a store owned by ownerID.
func (s *Service) CreateStore(ctx context.Context, ownerID int64, name string) (*Store, error) {
	name = cleanText(name)
	if err := validator.Apply(
		validator.Positive("owner_id", ownerID),
		validator.Required("name", name),
		validator.MaxLen("name", name, maxNameLength),
	); err != nil {
		return nil, err
	}

	store, err := s.storage.CreateStore(ctx, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to create store: %w", err)
	}

	s.log.InfoContext(ctx, "store created",
		logger.StoreID(store.ID),
		logger.UserID(ownerID),
		logger.Component("catalog"),
	)
	return store, nil
}

// GetStore returns a store by id.
func (s *Service) GetStore(ctx context.Context, id int64) (*Store, error) {
	store, err := s.storage.GetStore(ctx, id)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("catalog: failed to load store: %w", err)
	}
	return store, nil
}

// CreateProduct lists a product in an existing store.
func (s *Service) CreateProduct(ctx context.Context, p NewProduct) (*Product, error) {
	p.Name = cleanText(p.Name)
	p.Description = sanitizer.Apply(p.Description, sanitizer.StripControl, sanitizer.Trim)

	if err := validator.Apply(
		validator.Positive("store_id", p.StoreID),
		validator.Required("name", p.Name),
		validator.MaxLen("name", p.Name, maxNameLength),
		validator.MaxLen("description", p.Description, maxDescriptionLength),
		validator.NonNegative("price_cents", p.PriceCents),
	); err != nil {
		return nil, err
	}

	product, err := s.storage.CreateProduct(ctx, p)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("catalog: failed to create product: %w", err)
	}

	s.log.InfoContext(ctx, "product created",
		logger.ProductID(product.ID),
		logger.StoreID(product.StoreID),
		logger.Component("catalog"),
	)
	return product, nil
}

// GetProduct returns a product by id.
func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	product, err := s.storage.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog: failed to load product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies patch to a product. An empty patch returns the
// product unchanged.
func (s *Service) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*Product, error) {
	if patch.Empty() {
		return s.GetProduct(ctx, id)
	}

	var rules []validator.Rule
	if patch.Name != nil {
		name := cleanText(*patch.Name)
		patch.Name = &name
		rules = append(rules,
			validator.Required("name", name),
			validator.MaxLen("name", name, maxNameLength),
		)
	}
	if patch.Description != nil {
		desc := sanitizer.Apply(*patch.Description, sanitizer.StripControl, sanitizer.Trim)
		patch.Description = &desc
		rules = append(rules, validator.MaxLen("description", desc, maxDescriptionLength))
	}
	if patch.PriceCents != nil {
		rules = append(rules, validator.NonNegative("price_cents", *patch.PriceCents))
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}

	product, err := s.storage.UpdateProduct(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog: failed to update product: %w", err)
	}

	s.log.InfoContext(ctx, "product updated",
		logger.ProductID(product.ID),
		logger.Component("catalog"),
	)
	return product, nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("catalog: failed to delete product: %w", err)
	}

	s.log.InfoContext(ctx, "product deleted",
		logger.ProductID(id),
		logger.Component("catalog"),
	)
	return nil
}
