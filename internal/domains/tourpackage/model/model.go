package model

import (
	"saleema/shared/model"
	"time"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID            = "id"
	FieldName          = "name"
	FieldLocation      = "location"
	FieldPrice         = "price"
	FieldQuota         = "quota"
	FieldQuotaFilled   = "quota_filled"
	FieldDepartureDate = "departure_date"
	FieldActive        = "is_active"
)

// Package is a bookable tour. Price is per person in the smallest currency unit.
type Package struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Location      string    `db:"location"`
	Description   string    `db:"description"`
	Price         int64     `db:"price"`
	Quota         int       `db:"quota"`
	QuotaFilled   int       `db:"quota_filled"`
	DurationDays  int       `db:"duration_days"`
	DepartureDate time.Time `db:"departure_date"`
	ImageURL      string    `db:"image_url"`
	Active        bool      `db:"is_active"`
	model.Metadata
}

// Available is the number of seats that can still be reserved.
func (p Package) Available() int {
	return max(0, p.Quota-p.QuotaFilled)
}

func (p Package) CanSeat(participants int) bool {
	return participants > 0 && p.Available() >= participants
}
