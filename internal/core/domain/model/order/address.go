package order

import (
	"errors"

	"foodorder/internal/pkg/errs"
)

// Address is the delivery destination captured with the order. It is a value
// object: immutable once the order is created.
type Address struct {
	fullName   string
	phone      string
	email      string
	street     string
	city       string
	postalCode string
}

// NewAddress creates a validated delivery address. Email and postal code are
// optional; the rest is required to hand the order to a delivery partner.
func NewAddress(fullName, phone, email, street, city, postalCode string) (Address, error) {
	var err error
	if fullName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("fullName"))
	}
	if phone == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("phone"))
	}
	if street == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("street"))
	}
	if city == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("city"))
	}
	if err != nil {
		return Address{}, err
	}

	return Address{
		fullName:   fullName,
		phone:      phone,
		email:      email,
		street:     street,
		city:       city,
		postalCode: postalCode,
	}, nil
}

func (a Address) FullName() string   { return a.fullName }
func (a Address) Phone() string      { return a.phone }
func (a Address) Email() string      { return a.email }
func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) PostalCode() string { return a.postalCode }
