package app

import (
	"errors"
	"fmt"
	"strings"
)

// VINLength is the length every VIN must have, exactly.
const VINLength = 17

var ErrInvalidVIN = errors.New("VIN must be exactly 17 characters")

// NormalizeVIN trims surrounding whitespace, upper-cases the VIN and
// validates its length. No network call is made for an invalid VIN.
func NormalizeVIN(vin string) (string, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if len(vin) != VINLength {
		return "", fmt.Errorf("%w (got %d)", ErrInvalidVIN, len(vin))
	}
	return vin, nil
}
