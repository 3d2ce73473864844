package resizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidScale = errors.New("invalid scale")

// Scale is a resize percentage. The offered choices are Scales(); any
// percent in (0, MaxPercent] is still handled deterministically.
type Scale int

const (
	Scale25 Scale = 25
	Scale50 Scale = 50
	Scale75 Scale = 75
)

// MaxPercent bounds Scale. The pipeline only shrinks.
const MaxPercent = 100

// Scales returns the selectable percentages in display order.
func Scales() []Scale {
	return []Scale{Scale25, Scale50, Scale75}
}

// ParseScale accepts "50%" or "50".
func ParseScale(s string) (Scale, error) {
	digits := strings.TrimSuffix(strings.TrimSpace(s), "%")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScale, s)
	}
	if sc := Scale(n); !sc.Valid() {
		return 0, fmt.Errorf("%w: %q must be between 1%% and %d%%", ErrInvalidScale, s, MaxPercent)
	}
	return Scale(n), nil
}

// ParseOfferedScale is ParseScale restricted to Scales().
func ParseOfferedScale(s string) (Scale, error) {
	sc, err := ParseScale(s)
	if err != nil {
		return 0, err
	}
	if !sc.Offered() {
		return 0, fmt.Errorf("%w: %q (choose one of %s)", ErrInvalidScale, s, offeredList())
	}
	return sc, nil
}

func (s Scale) Offered() bool {
	for _, o := range Scales() {
		if s == o {
			return true
		}
	}
	return false
}

// Valid reports whether s is within (0, MaxPercent].
func (s Scale) Valid() bool { return s > 0 && s <= MaxPercent }

func (s Scale) Percent() int { return int(s) }

func (s Scale) Factor() float64 { return float64(s) / 100 }

// String is the display selector, e.g. "50%". It is part of output names.
func (s Scale) String() string { return strconv.Itoa(int(s)) + "%" }

// Apply computes floor(w*factor) and floor(h*factor) independently.
// Integer arithmetic keeps the floor exact.
func (s Scale) Apply(w, h int) (int, int) {
	return w * int(s) / 100, h * int(s) / 100
}

func offeredList() string {
	names := make([]string, 0, len(Scales()))
	for _, s := range Scales() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
