package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/checkout"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func newTestCheckout(link string) *checkout.Checkout {
	return checkout.New(checkout.Options{
		MessagingLink:  link,
		CurrencySymbol: "TL",
		OrderNumbers:   func() int { return 1234 },
		Now:            func() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) },
	}, zerolog.Nop())
}

func TestCheckoutService_Submit(t *testing.T) {
	ctx := context.Background()
	validForm := model.DeliveryForm{Name: "Ayşe", Email: "ayse@example.com", Address: "Kyrenia"}
	fullCart := &model.CartState{
		Items:     []model.CartLineItem{{ID: "P001", Name: "Chocolate Cake", Price: 25.5, Quantity: 2}},
		ItemCount: 2,
		Total:     51,
	}

	tests := []struct {
		name        string
		link        string
		cart        *model.CartState
		cartErr     error
		form        model.DeliveryForm
		expectError error
		checkResult func(t *testing.T, result *model.CheckoutResult)
	}{
		{
			name: "Success",
			link: "905488417908",
			cart: fullCart,
			form: validForm,
			checkResult: func(t *testing.T, result *model.CheckoutResult) {
				assert.Equal(t, 1234, result.OrderNumber)
				assert.Contains(t, result.Message, "•  2x Chocolate Cake - 51.00 TL")
				assert.Contains(t, result.URL, "https://wa.me/905488417908?text=")
			},
		},
		{
			name:        "Empty cart with valid form",
			link:        "905488417908",
			cart:        &model.CartState{Items: []model.CartLineItem{}},
			form:        validForm,
			expectError: model.ErrEmptyCart,
		},
		{
			name:        "Messaging link missing",
			link:        "",
			cart:        fullCart,
			form:        validForm,
			expectError: model.ErrLinkNotConfigured,
		},
		{
			name:        "Cart cannot be loaded",
			link:        "905488417908",
			cartErr:     errors.New("failed to load cart"),
			form:        validForm,
			expectError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(MockCartService)
			carts.On("Get", ctx, "s1").Return(tt.cart, tt.cartErr)

			svc := NewCheckoutService(carts, testCatalog(t), newTestCheckout(tt.link), zerolog.Nop())
			result, err := svc.Submit(ctx, "s1", tt.form)

			switch {
			case tt.cartErr != nil:
				require.Error(t, err)
				assert.Nil(t, result)
			case tt.expectError != nil:
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, result)
			default:
				require.NoError(t, err)
				tt.checkResult(t, result)
			}
			carts.AssertExpectations(t)
			carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_Submit_ValidationError(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartService)
	carts.On("Get", ctx, "s1").Return(&model.CartState{
		Items: []model.CartLineItem{{ID: "P001", Name: "Cake", Price: 1, Quantity: 1}},
	}, nil)

	svc := NewCheckoutService(carts, testCatalog(t), newTestCheckout("905488417908"), zerolog.Nop())
	_, err := svc.Submit(ctx, "s1", model.DeliveryForm{Name: "Ayşe", Email: "a@b", Address: "Kyrenia"})

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, model.FieldErrors{"email": "Please enter a valid email address"}, verr.Fields)
}

func TestCheckoutService_Inquiry(t *testing.T) {
	ctx := context.Background()
	svc := NewCheckoutService(new(MockCartService), testCatalog(t), newTestCheckout("wa.link/i9n1mn"), zerolog.Nop())

	result, err := svc.Inquiry(ctx, "P002")
	require.NoError(t, err)
	assert.Equal(t, "P002", result.ProductID)
	assert.Contains(t, result.Message, `"Apple Pie" (TL12.25)`)
	assert.Contains(t, result.URL, "https://wa.link/i9n1mn?text=")

	_, err = svc.Inquiry(ctx, "P404")
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCheckoutService_Contact(t *testing.T) {
	ctx := context.Background()

	svc := NewCheckoutService(new(MockCartService), testCatalog(t), newTestCheckout("905488417908"), zerolog.Nop())
	result, err := svc.Contact(ctx)
	require.NoError(t, err)
	assert.Equal(t, checkout.ContactMessage, result.Message)

	svc = NewCheckoutService(new(MockCartService), testCatalog(t), newTestCheckout(""), zerolog.Nop())
	_, err = svc.Contact(ctx)
	assert.ErrorIs(t, err, model.ErrLinkNotConfigured)
}
