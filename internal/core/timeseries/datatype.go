package timeseries

import (
	"math"
	"strings"

	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// DataType is the semantic type of a series' samples. Samples are always
// stored as float64; the data type decides how they are coerced on
// construction and rendered on output.
type DataType string

const (
	DataTypeFloat   DataType = "Float"
	DataTypeInteger DataType = "Integer"
	DataTypeBoolean DataType = "Boolean"
)

// ParseDataType resolves a data type name, case-insensitively. An empty name
// selects Float.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float":
		return DataTypeFloat, nil
	case "integer", "int":
		return DataTypeInteger, nil
	case "boolean", "bool":
		return DataTypeBoolean, nil
	}
	return "", tserr.Malformedf("unknown data type %q", s)
}

// Coerce maps a raw sample onto the data type's domain: integers truncate
// toward zero and booleans collapse to 0 or 1.
func (d DataType) Coerce(v float64) float64 {
	switch d {
	case DataTypeInteger:
		return math.Trunc(v)
	case DataTypeBoolean:
		if v != 0 {
			return 1
		}
		return 0
	}
	return v
}

// Output renders a stored sample in its natural Go type.
func (d DataType) Output(v float64) interface{} {
	switch d {
	case DataTypeInteger:
		return int64(v)
	case DataTypeBoolean:
		return v != 0
	}
	return v
}
