package model

import (
	"fmt"
	"time"
)

const ArchiveDirectory = "tickets"

// Ticket is everything printed on an e-ticket.
type Ticket struct {
	BookingCode     string
	PackageName     string
	PackageLocation string
	DepartureDate   time.Time
	Participants    int
	TotalPrice      int64
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	Passengers      []string
}

func (t Ticket) FileName() string {
	return fmt.Sprintf("ticket-%s.pdf", t.BookingCode)
}
