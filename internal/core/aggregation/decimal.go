package aggregation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// ValueDecimal converts an aggregation result into the decimal used on the
// wire. Non-finite values have no decimal form and map to zero.
func ValueDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// SampleValue converts a decoded sample into a float64. JSON numbers arrive
// as float64; YAML seeds can also produce ints and bools, and numeric strings
// are accepted for values that don't fit a JSON number exactly.
func SampleValue(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return finite(val)
	case float32:
		return finite(float64(val))
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return 0, tserr.Malformedf("sample %q is not a number", val)
		}
		return d.InexactFloat64(), nil
	case nil:
		return 0, tserr.Malformedf("sample must not be null")
	}
	return 0, tserr.Malformedf("unsupported sample type %T", v)
}

// SampleValues converts a decoded sample list.
func SampleValues(raw []interface{}) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, v := range raw {
		f, err := SampleValue(v)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, tserr.Malformedf("sample %v is not finite", v)
	}
	return v, nil
}
