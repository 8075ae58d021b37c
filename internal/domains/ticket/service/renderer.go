package service

import (
	"bytes"
	"fmt"
	"saleema/internal/domains/ticket/model"
	"saleema/shared"
	"saleema/shared/constant"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
)

const placeholder = "-"

// Renderer draws a ticket as a PDF document.
type Renderer interface {
	Render(ticket model.Ticket) ([]byte, error)
}

type pdfRenderer struct {
	issuer string
}

func NewRenderer(issuer string) Renderer {
	return &pdfRenderer{issuer: issuer}
}

func (r *pdfRenderer) Render(ticket model.Ticket) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+ticket.BookingCode, false)
	pdf.SetAuthor(r.issuer, false)
	pdf.AddPage()

	pdf.SetFillColor(191, 162, 232)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 14, "E-Ticket", "", 1, "C", true, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Booking Code", ticket.BookingCode},
		{"Package", ticket.PackageName},
		{"Location", ticket.PackageLocation},
		{"Departure", ticket.DepartureDate.Format(constant.DateOnlyFormat)},
		{"Participants", strconv.Itoa(ticket.Participants)},
		{"Total Price", shared.FormatRupiah(ticket.TotalPrice)},
		{"Contact", ticket.ContactName},
		{"Email", ticket.ContactEmail},
		{"Phone", ticket.ContactPhone},
	}

	pdf.SetTextColor(0, 0, 0)

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(45, 8, row[0])
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, orPlaceholder(row[1]))
		pdf.Ln(8)
	}

	if len(ticket.Passengers) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Travelers")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)

		for i, name := range ticket.Passengers {
			pdf.Cell(0, 7, fmt.Sprintf("%d. %s", i+1, orPlaceholder(name)))
			pdf.Ln(7)
		}
	}

	pdf.Ln(10)
	pdf.SetTextColor(123, 74, 184)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, "Please show this ticket upon arrival.", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket %s: %w", ticket.BookingCode, err)
	}

	return buf.Bytes(), nil
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}

	return value
}
