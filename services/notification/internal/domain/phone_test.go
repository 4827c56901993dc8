package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"37001234", "+50937001234"},
		{"3700-1234", "+50937001234"},
		{"50937001234", "+50937001234"},
		{"+509 3700 1234", "+50937001234"},
		{"15145550100", "+15145550100"},
		{"+1 (514) 555-0100", "+15145550100"},
		// 8 digits wins over the leading "+".
		{"+1-555-0100", "+50915550100"},
		{"+33612345678", "+33612345678"},
		{"1234567", "+5091234567"},
		{"", "+509"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}
