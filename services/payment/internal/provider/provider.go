package provider

import "context"

// LineItem is an ad-hoc priced line; Stripe creates the price on the fly.
type LineItem struct {
	Name        string
	Description string
	// UnitAmount is in minor units.
	UnitAmount int64
	Currency   string
	Quantity   int64
}

// CheckoutInput describes one hosted checkout page. Exactly one of LineItem
// and PriceID is set.
type CheckoutInput struct {
	Mode                 string
	LineItem             *LineItem
	PriceID              string
	CustomerEmail        string
	SuccessURL           string
	CancelURL            string
	Metadata             map[string]string
	SubscriptionMetadata map[string]string
}

// CheckoutSession is the provider's answer.
type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway creates hosted checkout sessions. Implementations call the
// provider at most once per invocation.
type Gateway interface {
	// Name returns the provider name (e.g., "mock", "stripe").
	Name() string

	CreateCheckoutSession(ctx context.Context, in *CheckoutInput) (*CheckoutSession, error)
}
