package layout

import (
	"math"

	"github.com/matzehuels/laneplot/pkg/errors"
)

// DefaultRowWeight is the height of a task bar in transmission rows.
const DefaultRowWeight = 1

// Numeric selects how units and coordinates are represented.
type Numeric int

const (
	// Float keeps units and coordinates as real numbers.
	Float Numeric = iota
	// Integer truncates units and coordinates to whole pixels.
	Integer
)

func (n Numeric) String() string {
	if n == Integer {
		return "integer"
	}
	return "float"
}

// ParseNumeric parses "float" or "integer".
func ParseNumeric(s string) (Numeric, error) {
	switch s {
	case "", "float":
		return Float, nil
	case "integer", "int":
		return Integer, nil
	}
	return Float, errors.New(errors.ErrCodeInvalidInput, "invalid numeric mode: %q (must be 'float' or 'integer')", s)
}

// MarshalText implements encoding.TextMarshaler.
func (n Numeric) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Numeric) UnmarshalText(text []byte) error {
	v, err := ParseNumeric(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// Option configures [Build] and [ResolveUnits].
type Option func(*config)

type config struct {
	rowWeight int
	numeric   Numeric
}

// WithRowWeight sets K, the visual height of a task bar in transmission-row
// units. Revisions of the chart have used 1 and 2. K must be at least 1.
func WithRowWeight(k int) Option { return func(c *config) { c.rowWeight = k } }

// WithIntegerUnits truncates units and coordinates to whole pixels.
func WithIntegerUnits() Option { return func(c *config) { c.numeric = Integer } }

// WithNumeric selects the numeric representation explicitly.
func WithNumeric(n Numeric) Option { return func(c *config) { c.numeric = n } }

func newConfig(opts []Option) (config, error) {
	c := config{rowWeight: DefaultRowWeight, numeric: Float}
	for _, opt := range opts {
		opt(&c)
	}
	if c.rowWeight < 1 {
		return c, errors.New(errors.ErrCodeInvalidInput, "row weight must be at least 1, got %d", c.rowWeight)
	}
	return c, nil
}

// round applies the configured numeric representation to a coordinate.
func (c config) round(v float64) float64 {
	if c.numeric == Integer {
		return math.Trunc(v)
	}
	return v
}

// Units are the pixel scale factors of a layout.
type Units struct {
	// X is pixels per time unit.
	X float64 `json:"x_unit"`
	// Y is pixels per row unit.
	Y float64 `json:"y_unit"`
	// SumRows is the total row budget over used lanes.
	SumRows int `json:"sum_rows"`
}

// ResolveUnits converts extents into pixel scale factors for a canvas.
//
// It returns DEGENERATE_SCHEDULE when the time extent or the row sum is
// zero (or when integer truncation leaves a zero unit), and INVALID_INPUT
// for a non-positive canvas or row weight. It never divides by zero.
func ResolveUnits(width, height float64, ext Extents, opts ...Option) (Units, error) {
	c, err := newConfig(opts)
	if err != nil {
		return Units{}, err
	}
	return resolveUnits(width, height, ext, c)
}

func resolveUnits(width, height float64, ext Extents, c config) (Units, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Units{}, errors.New(errors.ErrCodeInvalidInput, "canvas must be positive and finite, got %gx%g", width, height)
	}

	sumRows := ext.Profile.SumRows(c.rowWeight)
	if ext.MaxTime <= 0 {
		return Units{}, errors.New(errors.ErrCodeDegenerateSchedule, "schedule has no time extent")
	}
	if sumRows == 0 {
		return Units{}, errors.New(errors.ErrCodeDegenerateSchedule, "schedule has no rows")
	}

	u := Units{
		X:       c.round(width / ext.MaxTime),
		Y:       c.round(height / float64(sumRows)),
		SumRows: sumRows,
	}
	if u.X == 0 || u.Y == 0 {
		return Units{}, errors.New(errors.ErrCodeDegenerateSchedule,
			"%s units truncate to zero on a %gx%g canvas (%g time, %d rows)", c.numeric, width, height, ext.MaxTime, sumRows)
	}
	return u, nil
}
