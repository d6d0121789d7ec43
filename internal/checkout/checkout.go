package checkout

import (
	"math/rand/v2"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// MaxOrderNumber bounds generated order numbers, exclusive.
const MaxOrderNumber = 10000

// OrderNumbers produces order numbers. They are for display only and not
// guaranteed to be unique.
type OrderNumbers func() int

// RandomOrderNumbers draws order numbers uniformly from [0, MaxOrderNumber).
func RandomOrderNumbers() OrderNumbers {
	return func() int {
		return rand.IntN(MaxOrderNumber)
	}
}

// Options configures a Checkout.
type Options struct {
	MessagingLink  string
	CurrencySymbol string
	// OrderNumbers defaults to RandomOrderNumbers.
	OrderNumbers OrderNumbers
	// Now defaults to time.Now.
	Now func() time.Time
}

// Checkout validates orders and produces the messages and links for them.
type Checkout struct {
	links   *LinkBuilder
	symbol  string
	numbers OrderNumbers
	now     func() time.Time
	logger  zerolog.Logger
}

// New creates a Checkout.
func New(opts Options, logger zerolog.Logger) *Checkout {
	c := &Checkout{
		links:   NewLinkBuilder(opts.MessagingLink),
		symbol:  opts.CurrencySymbol,
		numbers: opts.OrderNumbers,
		now:     opts.Now,
		logger:  logger.With().Str("component", "checkout").Logger(),
	}
	if c.numbers == nil {
		c.numbers = RandomOrderNumbers()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if !c.links.Configured() {
		c.logger.Warn().Msg("messaging link not configured, checkout will be unavailable")
	}
	return c
}

// Submit builds the order message and link for cart. The form is validated
// first and reported as a *model.ValidationError; an empty cart is rejected
// with model.ErrEmptyCart. The cart itself is never modified.
func (c *Checkout) Submit(cart model.CartState, form model.DeliveryForm) (*model.CheckoutResult, error) {
	if errs := ValidateForm(form); len(errs) > 0 {
		c.logger.Debug().Int("invalid_fields", len(errs)).Msg("delivery form rejected")
		return nil, &model.ValidationError{Fields: errs}
	}

	if len(cart.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	order := Order{
		Number:         c.numbers(),
		Date:           c.now(),
		Form:           form,
		Items:          cart.Items,
		Total:          cart.Total,
		CurrencySymbol: c.symbol,
	}
	message := BuildOrderMessage(order)

	url, err := c.links.URL(message)
	if err != nil {
		c.logger.Error().Err(err).Int("order_number", order.Number).Msg("cannot hand off order")
		return nil, err
	}

	c.logger.Info().
		Int("order_number", order.Number).
		Int("lines", len(cart.Items)).
		Float64("total", cart.Total).
		Msg("order message built")

	return &model.CheckoutResult{
		OrderNumber: order.Number,
		Message:     message,
		URL:         url,
	}, nil
}

// Inquiry builds the message and link for asking about product.
func (c *Checkout) Inquiry(product model.Product) (*model.InquiryResult, error) {
	message := InquiryMessage(product.Name, product.Price, c.symbol)

	url, err := c.links.URL(message)
	if err != nil {
		c.logger.Error().Err(err).Str("product_id", product.ID).Msg("cannot build inquiry link")
		return nil, err
	}

	return &model.InquiryResult{
		ProductID: product.ID,
		Message:   message,
		URL:       url,
	}, nil
}

// Contact builds the link for a general enquiry.
func (c *Checkout) Contact() (*model.InquiryResult, error) {
	url, err := c.links.URL(ContactMessage)
	if err != nil {
		c.logger.Error().Err(err).Msg("cannot build contact link")
		return nil, err
	}

	return &model.InquiryResult{
		Message: ContactMessage,
		URL:     url,
	}, nil
}
