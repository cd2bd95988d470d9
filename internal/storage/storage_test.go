package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name     string
		object   string
		expected string
	}{
		{
			name:     "plain",
			object:   "u1/1700000000000_proof.png",
			expected: "https://storage.googleapis.com/payment-screenshots/u1/1700000000000_proof.png",
		},
		{
			name:     "spaces escaped per segment",
			object:   "u1/1700000000000_my proof.png",
			expected: "https://storage.googleapis.com/payment-screenshots/u1/1700000000000_my%20proof.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PublicURL("payment-screenshots", tt.object))
		})
	}
}
