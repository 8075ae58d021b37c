package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleema/internal/domains/ticket/model"
)

func TestPDFRenderer_Render(t *testing.T) {
	renderer := NewRenderer("Saleema Tour")

	content, err := renderer.Render(model.Ticket{
		BookingCode:   "BK-2026-12345",
		PackageName:   "Umrah Plus Turki",
		DepartureDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		Participants:  2,
		TotalPrice:    70_000_000,
		ContactName:   "Aisyah",
		Passengers:    []string{"Aisyah", "Umar"},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}
