package postgres

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/golang/snappy"
)

// Samples and timestamps are stored as fixed-width little-endian arrays,
// snappy-compressed. Step series with long runs of equal values compress
// well under snappy.

func encodeValues(values []float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return compress(buf)
}

func decodeValues(data []byte, count int) ([]float64, error) {
	raw, err := decompress(data)
	if err != nil {
		return nil, err
	}
	if len(raw) != 8*count {
		return nil, fmt.Errorf("corrupt samples: got %d bytes for %d values", len(raw), count)
	}
	values := make([]float64, count)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return values, nil
}

// encodeTimestamps returns nil for an empty slice so periodic series store
// SQL NULL.
func encodeTimestamps(ts []time.Time) []byte {
	if len(ts) == 0 {
		return nil
	}
	buf := make([]byte, 8*len(ts))
	for i, t := range ts {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(t.UnixNano()))
	}
	return compress(buf)
}

func decodeTimestamps(data []byte, count int) ([]time.Time, error) {
	if len(data) == 0 {
		return nil, nil
	}
	raw, err := decompress(data)
	if err != nil {
		return nil, err
	}
	if len(raw) != 8*count {
		return nil, fmt.Errorf("corrupt timestamps: got %d bytes for %d values", len(raw), count)
	}
	ts := make([]time.Time, count)
	for i := range ts {
		ts[i] = time.Unix(0, int64(binary.LittleEndian.Uint64(raw[i*8:]))).UTC()
	}
	return ts, nil
}

func compress(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	return snappy.Encode(nil, data)
}

func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompress failed: %w", err)
	}
	return out, nil
}
