package model

// Contact is who the operator reaches about a booking.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// DeriveContact fills every empty field of given from the first passenger.
func DeriveContact(given Contact, passengers Passengers) Contact {
	if len(passengers) == 0 {
		return given
	}

	first := passengers[0]

	if given.Name == "" {
		given.Name = first.FullName
	}

	if given.Phone == "" {
		given.Phone = first.PhoneNumber
	}

	if given.Email == "" {
		given.Email = first.Email
	}

	return given
}
