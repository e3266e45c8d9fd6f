// internal/adapt/setup.go
package adapt

import (
	"fmt"
	"strings"

	"dietadapt/internal/diet"
	"dietadapt/internal/refdata"
)

// Setup selects the output convention: identifier naming and whether an
// upper-bound column is populated.
type Setup string

const (
	// SetupAGORA targets single AGORA models: identifiers unchanged except the
	// adenosylcobalamin respelling.
	SetupAGORA Setup = "AGORA"
	// SetupPairwise targets joined two-species models: the extracellular
	// compartment suffix becomes the shared-lumen suffix.
	SetupPairwise Setup = "Pairwise"
	// SetupMicrobiota targets community models: identifiers gain the Diet_
	// prefix and the diet compartment suffix, and every row gets an upper
	// bound forcing at least 80% uptake of the original dietary amount.
	SetupMicrobiota Setup = "Microbiota"
)

// Compartment suffixes rewritten by the setups.
const (
	suffixExtracellular = "(e)"
	suffixLumen         = "[u]"
	suffixDiet          = "[d]"
	prefixDiet          = "Diet_"
)

// InvalidSetupError reports an unrecognized setup token.
type InvalidSetupError struct{ Token string }

func (e *InvalidSetupError) Error() string {
	return fmt.Sprintf("invalid setup %q (want %s, %s or %s)", e.Token, SetupAGORA, SetupPairwise, SetupMicrobiota)
}

// ParseSetup validates a setup token. Tokens are case-sensitive.
func ParseSetup(tok string) (Setup, error) {
	switch Setup(tok) {
	case SetupAGORA, SetupPairwise, SetupMicrobiota:
		return Setup(tok), nil
	}
	return "", &InvalidSetupError{Token: tok}
}

// Rewrite applies the setup's identifier transform to the table in place and,
// for Microbiota, populates the upper-bound column. snap must be the snapshot
// taken from the originally loaded table: the Microbiota upper bound is
// -0.8 x the original (un-negated) input value for identifiers that were in
// the input, and 0 for augmented rows.
func Rewrite(t diet.Table, snap diet.Snapshot, setup Setup) error {
	switch setup {
	case SetupAGORA:
		for i := range t {
			if t[i].ID == refdata.Adocbl {
				t[i].ID = refdata.AdocblAlt
			}
		}
	case SetupPairwise:
		for i := range t {
			t[i].ID = strings.ReplaceAll(t[i].ID, suffixExtracellular, suffixLumen)
		}
	case SetupMicrobiota:
		for i := range t {
			t[i].HasUpper = true
			if v, ok := snap.Value(t[i].ID); ok {
				t[i].Upper = -0.8 * v
			} else {
				t[i].Upper = 0
			}
			t[i].ID = prefixDiet + strings.ReplaceAll(t[i].ID, suffixExtracellular, suffixDiet)
		}
	default:
		return &InvalidSetupError{Token: string(setup)}
	}
	return nil
}
