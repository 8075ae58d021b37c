package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Passenger struct {
	FullName       string `json:"fullname"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	Email          string `json:"email,omitempty"`
	DocumentType   string `json:"document_type,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
}

// Passengers is stored as a JSONB array and keeps the order it was submitted in.
type Passengers []Passenger

func (p Passengers) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}

	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal passengers: %w", err)
	}

	return b, nil
}

func (p *Passengers) Scan(value any) error {
	if value == nil {
		*p = Passengers{}

		return nil
	}

	var raw []byte

	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan type %T into Passengers", value)
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return fmt.Errorf("failed to unmarshal passengers: %w", err)
	}

	return nil
}
