package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"starpro_store/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppNotifier(t *testing.T) {
	order := model.Order{CustomerName: "Asha", Items: []string{"Vanilla Cup"}, Total: decimal.NewFromInt(50)}

	note, err := NewWhatsAppNotifier("+917904410087").OrderPlaced(context.Background(), order)
	require.NoError(t, err)
	require.NotNil(t, note)

	assert.Equal(t, "whatsapp", note.Channel)
	assert.True(t, strings.HasPrefix(note.URL, "https://wa.me/917904410087?text="))
	assert.NotContains(t, note.URL, "+")

	u, err := url.Parse(note.URL)
	require.NoError(t, err)
	assert.Equal(t, note.Message, u.Query().Get("text"))

	assert.Contains(t, note.Message, "*Customer:* Asha")
	assert.Contains(t, note.Message, "*Item:* Vanilla Cup")
	assert.Contains(t, note.Message, "*Total:* ₹50")
}

func TestWhatsAppNotifier_NoNumber(t *testing.T) {
	_, err := NewWhatsAppNotifier(" ").OrderPlaced(context.Background(), model.Order{})
	assert.Error(t, err)
}

func TestNoopNotifier(t *testing.T) {
	note, err := NoopNotifier{}.OrderPlaced(context.Background(), model.Order{})
	assert.NoError(t, err)
	assert.Nil(t, note)
}

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"Hi (Asha)! *'": "Hi%20(Asha)!%20*'",
		"a+b=c&d":       "a%2Bb%3Dc%26d",
		"₹50":           "%E2%82%B950",
		"line\nbreak":   "line%0Abreak",
		"-_.~":          "-_.~",
	}
	for in, want := range tests {
		assert.Equal(t, want, encodeURIComponent(in), in)
	}
}
