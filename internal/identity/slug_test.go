package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Test Co", "test-co"},
		{"punctuation and padding", "  Test--Name!! ", "test-name"},
		{"unicode stripped", "Café Δ Corp", "caf-corp"},
		{"already slugged", "test-name", "test-name"},
		{"digits kept", "Web3 Labs", "web3-labs"},
		{"ampersand", "M&A Advisors", "m-a-advisors"},
		{"empty", "", ""},
		{"all punctuation", "!!! --- ???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, s := range []string{"  Test--Name!! ", "Already-Clean", "a  b  c", "42nd Street Capital"} {
		once := Slugify(s)
		assert.Equal(t, once, Slugify(once), "slugify must be idempotent for %q", s)
	}
}

func TestMakeID(t *testing.T) {
	assert.Equal(t, "a16z:test-co", MakeID(Slugify("Test Co")))
	assert.Equal(t, "a16z:", MakeID(""))
}
