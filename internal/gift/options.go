// SPDX-License-Identifier: Apache-2.0

package gift

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPenalty is returned for a wrong-answer weight outside Penalties.
var ErrInvalidPenalty = errors.New("invalid wrong-answer penalty")

// Penalty is the percentage weight given to a distractor, zero or negative.
type Penalty float64

// DefaultPenalty is the weight used when none is configured.
const DefaultPenalty Penalty = -10

// Penalties lists the accepted wrong-answer weights. -33.33333 is the
// classic correction for guessing with four options.
var Penalties = []Penalty{0, -5, -10, -20, -25, -33.33333, -50}

// String renders the weight in its shortest decimal form: "-10", "0", "-33.33333".
func (p Penalty) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// Valid reports whether p is one of Penalties.
func (p Penalty) Valid() bool {
	for _, allowed := range Penalties {
		if p == allowed {
			return true
		}
	}
	return false
}

// ParsePenalty parses a weight such as "-10" or "-33.33333". A trailing
// percent sign is accepted.
func ParsePenalty(s string) (Penalty, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPenalty, s)
	}
	p := Penalty(f)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: %s (allowed: %s)", ErrInvalidPenalty, p, allowedPenalties())
	}
	return p, nil
}

func allowedPenalties() string {
	parts := make([]string, len(Penalties))
	for i, p := range Penalties {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Options configures a conversion.
type Options struct {
	// Penalty is the weight of every distractor line.
	Penalty Penalty
	// Category, when non-empty, is emitted once as a $CATEGORY directive.
	Category string
}

// DefaultOptions returns the options used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{Penalty: DefaultPenalty}
}

// Validate checks the penalty against the accepted set.
func (o Options) Validate() error {
	if !o.Penalty.Valid() {
		return fmt.Errorf("%w: %s (allowed: %s)", ErrInvalidPenalty, o.Penalty, allowedPenalties())
	}
	return nil
}
