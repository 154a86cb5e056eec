package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	"github.com/sneha01vaish/BackendAPICartItem/internal/repository"
	apperrors "github.com/sneha01vaish/BackendAPICartItem/pkg/errors"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/tracing"
)

// Error codes returned by cart operations.
const (
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeQuantityRequired  = "QUANTITY_REQUIRED"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeItemNotInCart     = "ITEM_NOT_IN_CART"
	CodeCartAlreadyEmpty  = "CART_ALREADY_EMPTY"
)

// EventPublisher is notified after every successful cart mutation.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, sessionID string) error
}

// CartService implements the cart rules: merge on add, replace on update,
// stock ceilings, and lazy cart creation. Mutations for one session are
// serialized; a failed operation leaves the stored cart untouched.
type CartService struct {
	repo      repository.CartRepository
	products  repository.ProductRepository
	publisher EventPublisher
	metrics   *Metrics
	logger    *slog.Logger
	locks     *sessionLocks
	tracer    trace.Tracer
}

// NewCartService creates a new cart service. metrics may be nil.
func NewCartService(
	repo repository.CartRepository,
	products repository.ProductRepository,
	publisher EventPublisher,
	metrics *Metrics,
	logger *slog.Logger,
) *CartService {
	return &CartService{
		repo:      repo,
		products:  products,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		locks:     newSessionLocks(),
		tracer:    tracing.Tracer("storefront/cart"),
	}
}

// GetCart returns the session's cart, creating and storing an empty one on
// first access.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (cart *domain.Cart, err error) {
	ctx, span := s.start(ctx, "CartService.GetCart", sessionID)
	defer func() { s.finish(span, "get", err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	cart, found, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := s.repo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("save new cart: %w", err)
		}
	}
	return cart, nil
}

// AddItem adds quantity units of a product. An existing line is merged by
// summing quantities; the merged amount must still fit the product's stock.
func (s *CartService) AddItem(ctx context.Context, sessionID, rawProductID string, quantity int) (cart *domain.Cart, err error) {
	ctx, span := s.start(ctx, "CartService.AddItem", sessionID)
	defer func() { s.finish(span, "add", err) }()

	productID, err := ParseProductID(rawProductID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, invalidQuantity()
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, insufficientStock(product.Stock)
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	cart, _, err = s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItemIndex(product.ID); idx >= 0 {
		merged := cart.Items[idx].Quantity + quantity
		if merged > product.Stock {
			return nil, apperrors.BusinessRule(CodeInsufficientStock,
				fmt.Sprintf("Insufficient stock. You already have %d in your cart and only %d items are available",
					cart.Items[idx].Quantity, product.Stock))
		}
		cart.Items[idx].Quantity = merged
	} else {
		cart.Items = append(cart.Items, domain.NewCartItem(product, quantity))
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", product.ID),
		slog.Int("quantity", quantity),
		slog.Int("item_count", cart.ItemCount()),
	)

	return cart, nil
}

// UpdateItem sets the quantity of an existing line. A zero quantity counts
// as missing.
func (s *CartService) UpdateItem(ctx context.Context, sessionID, rawProductID string, quantity int) (cart *domain.Cart, err error) {
	ctx, span := s.start(ctx, "CartService.UpdateItem", sessionID)
	defer func() { s.finish(span, "update", err) }()

	productID, err := ParseProductID(rawProductID)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, apperrors.Validation(CodeQuantityRequired, "Quantity is required")
	}
	if quantity < 0 {
		return nil, invalidQuantity()
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	cart, _, err = s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(product.ID)
	if idx < 0 {
		return nil, itemNotInCart()
	}
	if quantity > product.Stock {
		return nil, insufficientStock(product.Stock)
	}
	cart.Items[idx].Quantity = quantity

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_id", sessionID),
		slog.Int("product_id", product.ID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem deletes the line for a product and returns it with the cart.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, rawProductID string) (cart *domain.Cart, removed *domain.CartItem, err error) {
	ctx, span := s.start(ctx, "CartService.RemoveItem", sessionID)
	defer func() { s.finish(span, "remove", err) }()

	productID, err := ParseProductID(rawProductID)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	cart, _, err = s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	idx := cart.FindItemIndex(productID)
	if idx < 0 {
		return nil, nil, itemNotInCart()
	}
	item := cart.Items[idx]
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, nil, fmt.Errorf("save cart: %w", err)
	}
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return cart, &item, nil
}

// ClearCart empties a non-empty cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (cart *domain.Cart, err error) {
	ctx, span := s.start(ctx, "CartService.ClearCart", sessionID)
	defer func() { s.finish(span, "clear", err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	current, _, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, apperrors.BusinessRule(CodeCartAlreadyEmpty, "Cart is already empty")
	}

	cart = domain.NewCart(sessionID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	if err := s.publisher.PublishCartCleared(ctx, sessionID); err != nil {
		s.metrics.eventFailed("cart.cleared")
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
		slog.Int("removed_lines", len(current.Items)),
	)

	return cart, nil
}

// load returns the stored cart or a fresh unsaved one. found reports which.
func (s *CartService) load(ctx context.Context, sessionID string) (*domain.Cart, bool, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(sessionID), false, nil
		}
		return nil, false, fmt.Errorf("get cart: %w", err)
	}
	return cart, true, nil
}

func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.publisher.PublishCartUpdated(ctx, cart); err != nil {
		s.metrics.eventFailed("cart.updated")
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) start(ctx context.Context, name, sessionID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("cart.session_id", sessionID)))
}

func (s *CartService) finish(span trace.Span, operation string, err error) {
	s.metrics.observe(operation, err)
	if err != nil {
		span.SetAttributes(attribute.String("cart.result", resultCode(err)))
		if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}

func resultCode(err error) string {
	if err == nil {
		return "OK"
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}

func invalidQuantity() error {
	return apperrors.Validation(CodeInvalidQuantity, "Quantity must be a positive integer")
}

func insufficientStock(stock int) error {
	return apperrors.BusinessRule(CodeInsufficientStock,
		fmt.Sprintf("Insufficient stock. Only %d items available", stock))
}

func itemNotInCart() error {
	return apperrors.NotFound(CodeItemNotInCart, "Item not found in cart")
}
