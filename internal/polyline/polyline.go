// Package polyline implements the Google encoded polyline algorithm used by
// routing services (OpenRouteService, OSRM, Google Directions) to compress a
// coordinate sequence into a short ASCII string.
//
// Each coordinate axis is stored as a signed delta from the previous point,
// zig-zag encoded, then split into 5-bit groups emitted low-to-high with a
// continuation bit (0x20) and offset by 63 to land in printable ASCII.
// Precision is fixed at 1e-5 degrees.
package polyline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/openeld/eld-dashboard/internal/domain"
)

// ErrMalformed is returned when an encoded string cannot be fully decoded —
// typically truncated input that ends in the middle of a 5-bit group or
// between the latitude and longitude of a point.
var ErrMalformed = errors.New("malformed polyline")

const precision = 1e-5

// Decode converts an encoded polyline into its ordered coordinate sequence.
// An empty string decodes to an empty (non-nil) sequence. Malformed input
// yields ErrMalformed and no coordinates; Decode never reads out of bounds
// and never panics.
func Decode(encoded string) ([]domain.Coordinate, error) {
	coords := []domain.Coordinate{}
	var lat, lng int

	for i := 0; i < len(encoded); {
		dlat, n, err := decodeDelta(encoded[i:])
		if err != nil {
			return nil, fmt.Errorf("%w: latitude at offset %d", ErrMalformed, i)
		}
		i += n

		dlng, n, err := decodeDelta(encoded[i:])
		if err != nil {
			return nil, fmt.Errorf("%w: longitude at offset %d", ErrMalformed, i)
		}
		i += n

		// Deltas are cumulative relative to the previous point.
		lat += dlat
		lng += dlng
		coords = append(coords, domain.Coordinate{
			Lat: float64(lat) * precision,
			Lng: float64(lng) * precision,
		})
	}
	return coords, nil
}

// decodeDelta reads one zig-zag encoded signed value from the front of s,
// returning the delta and the number of bytes consumed.
func decodeDelta(s string) (delta, width int, err error) {
	var result, shift uint
	for i := 0; i < len(s); i++ {
		b := int(s[i]) - 63
		if b < 0 {
			// Below the printable offset: not produced by any compliant encoder.
			return 0, 0, ErrMalformed
		}
		result |= uint(b&0x1f) << shift
		shift += 5
		if b < 0x20 {
			// Continuation bit clear: the group is complete.
			if result&1 != 0 {
				return ^int(result >> 1), i + 1, nil
			}
			return int(result >> 1), i + 1, nil
		}
	}
	// String exhausted mid-group.
	return 0, 0, ErrMalformed
}

// Encode converts a coordinate sequence to its encoded polyline form.
// It is the exact inverse of Decode for coordinates on the 1e-5 grid.
func Encode(coords []domain.Coordinate) string {
	var sb strings.Builder
	var prevLat, prevLng int

	for _, c := range coords {
		lat := int(math.Round(c.Lat / precision))
		lng := int(math.Round(c.Lng / precision))
		encodeDelta(&sb, lat-prevLat)
		encodeDelta(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return sb.String()
}

// encodeDelta writes one signed value in zig-zag 5-bit-group form.
func encodeDelta(sb *strings.Builder, delta int) {
	v := uint(delta) << 1
	if delta < 0 {
		v = ^v
	}
	for v >= 0x20 {
		sb.WriteByte(byte((v&0x1f)|0x20) + 63)
		v >>= 5
	}
	sb.WriteByte(byte(v) + 63)
}
