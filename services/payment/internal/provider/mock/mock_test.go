package mock

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/provider"
)

func TestCreateCheckoutSession(t *testing.T) {
	g := NewGateway("http://localhost:5173/")

	s, err := g.CreateCheckoutSession(context.Background(), &provider.CheckoutInput{Mode: "payment"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.ID, "cs_mock_"))
	assert.Equal(t, "http://localhost:5173/mock-checkout/"+s.ID, s.URL)
	assert.Equal(t, "mock", g.Name())
}
