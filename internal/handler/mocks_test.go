package handler

import (
	"context"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, category string, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) state(args mock.Arguments) (*model.CartState, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartState), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*model.CartState, error) {
	return m.state(m.Called(ctx, sessionID))
}

func (m *MockCartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*model.CartState, error) {
	return m.state(m.Called(ctx, sessionID, productID, quantity))
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*model.CartState, error) {
	return m.state(m.Called(ctx, sessionID, productID, quantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, sessionID, productID string) (*model.CartState, error) {
	return m.state(m.Called(ctx, sessionID, productID))
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) (*model.CartState, error) {
	return m.state(m.Called(ctx, sessionID))
}

func (m *MockCartService) SetOpen(ctx context.Context, sessionID string, open bool) (*model.CartState, error) {
	return m.state(m.Called(ctx, sessionID, open))
}

func (m *MockCartService) Toggle(ctx context.Context, sessionID string) (*model.CartState, error) {
	return m.state(m.Called(ctx, sessionID))
}

func (m *MockCartService) Discard(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockCartService) Close() error {
	return m.Called().Error(0)
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Submit(ctx context.Context, sessionID string, form model.DeliveryForm) (*model.CheckoutResult, error) {
	args := m.Called(ctx, sessionID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResult), args.Error(1)
}

func (m *MockCheckoutService) Inquiry(ctx context.Context, productID string) (*model.InquiryResult, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InquiryResult), args.Error(1)
}

func (m *MockCheckoutService) Contact(ctx context.Context) (*model.InquiryResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InquiryResult), args.Error(1)
}

// withURLParam attaches a chi route parameter to req.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// withCartID attaches a resolved cart session to req.
func withCartID(req *http.Request, id string) *http.Request {
	return req.WithContext(middleware.WithCartID(req.Context(), id))
}
