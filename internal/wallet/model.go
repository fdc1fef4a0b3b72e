package wallet

import (
	"time"

	"github.com/h-wallet/h_wallet/internal/scheme"
)

// Wallet registers a card or mobile-money account identity for a user.
// For card schemes Number holds only the first six digits of the PAN; the
// full card number is never persisted. For mobile-money schemes Number is
// the full phone number.
type Wallet struct {
	ID        string
	OwnerID   string
	Name      string
	Scheme    scheme.Scheme
	Type      scheme.Type
	Number    string
	CreatedAt time.Time
}

// Projection is the public view of a wallet.
type Projection struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Type      scheme.Type   `json:"type"`
	Scheme    scheme.Scheme `json:"scheme"`
	Number    string        `json:"number"`
	CreatedAt time.Time     `json:"created_at"`
	Owner     string        `json:"owner"`
}

// Projection builds the public view, attaching the owner's phone number.
func (w Wallet) Projection(ownerPhone string) Projection {
	return Projection{
		ID:        w.ID,
		Name:      w.Name,
		Type:      w.Type,
		Scheme:    w.Scheme,
		Number:    w.Number,
		CreatedAt: w.CreatedAt,
		Owner:     ownerPhone,
	}
}

// Registration captures the data required to create a wallet.
type Registration struct {
	Name   string
	Scheme scheme.Scheme
	PAN    string
}
