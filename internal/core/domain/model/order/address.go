package order

import (
	"fmt"
	"regexp"

	"marketplace/internal/pkg/errs"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// Address is the shipping address snapshot taken at order creation.
// It is a copy, not a live reference: later edits to the customer's saved
// address never retroactively change a placed order.
type Address struct {
	name    string
	phone   string
	line1   string
	line2   string
	city    string
	state   string
	pincode string
	country string
}

// NewAddress creates a validated shipping address snapshot.
// Name, phone, the first address line, city, and a six-digit pincode are
// required; line2, state, and country are optional.
func NewAddress(name, phone, line1, line2, city, state, pincode, country string) (Address, error) {
	if name == "" {
		return Address{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return Address{}, errs.NewValueIsRequiredError("phone")
	}
	if line1 == "" {
		return Address{}, errs.NewValueIsRequiredError("address line")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if !pincodePattern.MatchString(pincode) {
		return Address{}, errs.NewValueIsInvalidErrorWithCause("pincode",
			fmt.Errorf("%q is not a six-digit pincode", pincode))
	}

	return Address{
		name:    name,
		phone:   phone,
		line1:   line1,
		line2:   line2,
		city:    city,
		state:   state,
		pincode: pincode,
		country: country,
	}, nil
}

// Validate checks the address snapshot carries its required fields.
func (a Address) Validate() error {
	if a.name == "" || a.phone == "" || a.line1 == "" || a.city == "" {
		return errs.NewValueIsRequiredError("address must be created via NewAddress")
	}
	if !pincodePattern.MatchString(a.pincode) {
		return errs.NewValueIsInvalidError("pincode")
	}
	return nil
}

// Name returns the consignee name.
func (a Address) Name() string { return a.name }

// Phone returns the consignee phone number.
func (a Address) Phone() string { return a.phone }

// Line1 returns the first address line.
func (a Address) Line1() string { return a.line1 }

// Line2 returns the optional second address line.
func (a Address) Line2() string { return a.line2 }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the optional state.
func (a Address) State() string { return a.state }

// Pincode returns the six-digit destination pincode.
func (a Address) Pincode() string { return a.pincode }

// Country returns the optional country.
func (a Address) Country() string { return a.country }
