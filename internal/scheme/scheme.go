// Package scheme models payment schemes and the structural validation of
// their account numbers.
package scheme

import (
	"fmt"
	"strings"
)

// Scheme identifies a payment network.
type Scheme string

const (
	Visa       Scheme = "visa"
	Mastercard Scheme = "mastercard"
	Mtn        Scheme = "mtn"
	Vodafone   Scheme = "vodafone"
	AirtelTigo Scheme = "airteltigo"
)

// All enumerates every supported scheme. The validator factory checks its
// table against this list at construction time.
var All = []Scheme{Visa, Mastercard, Mtn, Vodafone, AirtelTigo}

// Parse resolves a case-insensitive scheme name.
func Parse(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case Visa:
		return Visa, nil
	case Mastercard:
		return Mastercard, nil
	case Mtn:
		return Mtn, nil
	case Vodafone:
		return Vodafone, nil
	case AirtelTigo:
		return AirtelTigo, nil
	default:
		return "", fmt.Errorf("unknown wallet scheme: %q", s)
	}
}

// Type is the kind of wallet a scheme produces.
type Type string

const (
	TypeCard Type = "card"
	TypeMomo Type = "momo"
)

// WalletType derives the wallet type from the scheme.
func (s Scheme) WalletType() (Type, error) {
	switch s {
	case Visa, Mastercard:
		return TypeCard, nil
	case Mtn, Vodafone, AirtelTigo:
		return TypeMomo, nil
	default:
		return "", fmt.Errorf("no wallet type defined for wallet scheme: %q", s)
	}
}
