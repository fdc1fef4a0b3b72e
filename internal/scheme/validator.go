package scheme

import (
	"fmt"
	"strings"
)

// ValidateFunc reports whether an account number is structurally valid for a
// scheme. Implementations are pure and stateless.
type ValidateFunc func(pan string) bool

// Mobile-money network prefix tables. These mirror the Ghanaian numbering
// plans in use; changing an entry changes which numbers validate.
var (
	mtnPrefixes = newPrefixSet(
		"23324", "23354", "23355", "233591", "233592", "233593", "233594",
		"233595", "233596", "2333080", "2333081", "2333082", "2333180",
		"2333280", "23333800", "23334800", "23335800", "23336800", "23337800",
		"23338800", "23339800",
	)

	vodafonePrefixes = newPrefixSet(
		"23320", "23330", "23331", "23332", "23333", "23334", "23335",
		"23336", "23337", "23338", "23339", "23350",
	)

	airtelTigoPrefixes = newPrefixSet(
		"23326", "23356", "233307", "233317", "233327", "233337", "233347",
		"233357", "233367", "233377", "233387", "233397", "23327", "23329",
		"23357",
	)
)

func newPrefixSet(prefixes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		set[p] = struct{}{}
	}
	return set
}

const (
	cardPANLength = 16
	momoPANLength = 12

	// Prefixes shorter than this never appear in any network table, so the
	// membership scan starts here.
	minPrefixLength = 5
)

// cardValidator accepts 16-digit PANs with the network's leading digit.
func cardValidator(leading string) ValidateFunc {
	return func(pan string) bool {
		return len(pan) == cardPANLength && strings.HasPrefix(pan, leading)
	}
}

// momoValidator accepts 12-character numbers whose prefix of length 5 up to
// 11 appears in the network's prefix set. Shorter prefixes are tried first,
// so variable-length prefixes coexist in one set without ambiguity.
func momoValidator(prefixes map[string]struct{}) ValidateFunc {
	return func(pan string) bool {
		if len(pan) != momoPANLength {
			return false
		}
		for i := minPrefixLength; i < len(pan); i++ {
			if _, ok := prefixes[pan[:i]]; ok {
				return true
			}
		}
		return false
	}
}

// ValidatorFactory resolves the validator for each scheme. Construction
// fails if any scheme lacks a mapping: an unmapped scheme is a deployment
// error, not a request-time one.
type ValidatorFactory struct {
	validators map[Scheme]ValidateFunc
}

// NewValidatorFactory builds the scheme-to-validator table and verifies it
// is total over All.
func NewValidatorFactory() (*ValidatorFactory, error) {
	validators := map[Scheme]ValidateFunc{
		Visa:       cardValidator("4"),
		Mastercard: cardValidator("5"),
		Mtn:        momoValidator(mtnPrefixes),
		Vodafone:   momoValidator(vodafonePrefixes),
		AirtelTigo: momoValidator(airtelTigoPrefixes),
	}

	for _, s := range All {
		if validators[s] == nil {
			return nil, fmt.Errorf("no validator defined for wallet scheme: %q", s)
		}
	}

	return &ValidatorFactory{validators: validators}, nil
}

// SchemeValidator returns the validator for the given scheme.
func (f *ValidatorFactory) SchemeValidator(s Scheme) (ValidateFunc, error) {
	v, ok := f.validators[s]
	if !ok {
		return nil, fmt.Errorf("no validator defined for wallet scheme: %q", s)
	}
	return v, nil
}

// PhoneNumberValidator accepts every number. Extension point for
// country-specific validation.
func (f *ValidatorFactory) PhoneNumberValidator() ValidateFunc {
	return func(string) bool { return true }
}
