package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// ratingPlaces is the number of fractional digits a Rating keeps.
const ratingPlaces = 1

// Rating is a movie score kept as a decimal with exactly one fractional digit.
// Rounding is half away from zero on the decimal value, so 8.45 becomes 8.5.
type Rating struct {
	d decimal.Decimal
}

// NewRating rounds v to one fractional digit.
// Parameters:
//   - v: raw score.
// Returns:
//   - Rating: rounded rating.
func NewRating(v float64) Rating {
	return Rating{d: decimal.NewFromFloat(v).Round(ratingPlaces)}
}

// Cmp compares r and other, returning -1, 0 or +1.
func (r Rating) Cmp(other Rating) int {
	return r.d.Cmp(other.d)
}

// String formats the rating with exactly one fractional digit.
func (r Rating) String() string {
	return r.d.StringFixed(ratingPlaces)
}

// MarshalJSON writes the rating as a bare number with one fractional digit (8.0, never 8).
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalJSON accepts quoted or bare numbers and rounds them.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	r.d = d.Round(ratingPlaces)
	return nil
}

// GormDataType declares the column type used by migrations.
func (Rating) GormDataType() string {
	return "numeric(3,1)"
}

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: rating as fixed-point text.
//   - error: always nil.
func (r Rating) Value() (driver.Value, error) {
	return r.String(), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if the value is not numeric.
func (r *Rating) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("failed to scan Rating: %w", err)
	}
	r.d = d.Round(ratingPlaces)
	return nil
}

// NewRatingFromDecimal rounds an exact decimal to one fractional digit.
func NewRatingFromDecimal(d decimal.Decimal) Rating {
	return Rating{d: d.Round(ratingPlaces)}
}
