package domain

import "fmt"

// Variant selects how a run produces its movie list.
// Values include VariantSynthetic, VariantCSV, and VariantEnriched.
type Variant string

const (
	VariantSynthetic Variant = "synthetic"
	VariantCSV       Variant = "csv"
	VariantEnriched  Variant = "enriched"
)

// ParseVariant validates a variant name given on the command line.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantSynthetic, VariantCSV, VariantEnriched:
		return v, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want synthetic, csv or enriched)", s)
	}
}
