package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Clamps(t *testing.T) {
	assert.Equal(t, Params{Page: 1, PerPage: DefaultPerPage}, New(0, 0))
	assert.Equal(t, Params{Page: 3, PerPage: MaxPerPage}, New(3, 500))
	assert.Equal(t, Params{Page: 2, PerPage: 10}, New(2, 10))
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/orders?page=2&per_page=5", nil)
	p := FromRequest(r)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.PerPage)
	assert.Equal(t, 5, p.Offset())

	r = httptest.NewRequest("GET", "/api/v1/orders?page=abc&per_page=-1", nil)
	assert.Equal(t, New(1, DefaultPerPage), FromRequest(r))
}

func TestNewResult(t *testing.T) {
	res := NewResult([]string{"a", "b"}, 5, New(1, 2))
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNext)

	last := NewResult([]string{"e"}, 5, New(3, 2))
	assert.False(t, last.HasNext)

	empty := NewResult[string](nil, 0, New(1, 20))
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}
