package mock

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/provider"
)

// Gateway returns local checkout URLs without calling any provider.
// It backs PAYMENT_DRIVER=mock in development.
type Gateway struct {
	baseURL string
}

func NewGateway(baseURL string) *Gateway {
	return &Gateway{baseURL: strings.TrimRight(baseURL, "/")}
}

func (g *Gateway) Name() string {
	return "mock"
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, _ *provider.CheckoutInput) (*provider.CheckoutSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := "cs_mock_" + uuid.NewString()
	return &provider.CheckoutSession{
		ID:  id,
		URL: g.baseURL + "/mock-checkout/" + id,
	}, nil
}
