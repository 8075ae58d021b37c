package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		key    string
		want   string
	}{
		{name: "plain", domain: "https://cdn.saleema.id", key: "payment-proofs/b-1.jpg", want: "https://cdn.saleema.id/payment-proofs/b-1.jpg"},
		{name: "trailing slash", domain: "https://cdn.saleema.id/", key: "tickets/BK-1.pdf", want: "https://cdn.saleema.id/tickets/BK-1.pdf"},
		{name: "leading slash on key", domain: "https://cdn.saleema.id", key: "/tickets/BK-1.pdf", want: "https://cdn.saleema.id/tickets/BK-1.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicURL(tt.domain, tt.key))
		})
	}
}
