// Package reducer applies a single binary arithmetic operation as a left
// fold over numbers read line by line from an input stream.
//
// Input passes through three lazy, single-pass stages: lines are trimmed
// and enumerated, each line is interpreted against the run's options
// (ignored prefix, blank-line terminator, parse-error policy), and the
// surviving numbers are folded strictly left to right. Nothing is read
// past a terminating line.
package reducer

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ErrNoValues is returned when a fold without an identity seed receives an
// empty value stream: with no first element there is no algebraically
// meaningful answer.
var ErrNoValues = errors.New("no input values to fold")

// Config holds the options of one reduction run. It is immutable for the
// duration of the run.
type Config struct {
	// Operation is the binary operator applied by the fold.
	Operation Operation
	// Identity is the operand that leaves Operation unchanged. Ignored and
	// silently failed lines contribute this value.
	Identity float64
	// IgnoreCount lines at the head of the input resolve to the identity
	// regardless of content, and are never treated as the terminator.
	IgnoreCount int
	// Silent recovers parse failures by substituting the identity instead
	// of terminating the stream.
	Silent bool
	// SeedWithIdentity starts the fold from the identity; otherwise the
	// first value of the stream is the seed.
	SeedWithIdentity bool
}

// maxLineSize bounds a single input line. The scanner's default token size
// is 64KiB, small enough for a legitimately padded line to trip.
const maxLineSize = 1 << 20

// NewConfig derives the identity for op and captures the per-run options.
func NewConfig(op Operation, ignore int, silent, seedWithIdentity bool) Config {
	return Config{
		Operation:        op,
		Identity:         op.Identity(),
		IgnoreCount:      ignore,
		Silent:           silent,
		SeedWithIdentity: seedWithIdentity,
	}
}

// Reduce folds the numbers read from r into a single result. Operands are
// applied strictly in input order, left to right; floating-point
// non-associativity makes the order observable, so it is part of the
// contract. The input is consumed once and never past a terminating line.
//
// A read error on r aborts the run, as does a single line longer than one
// mebibyte. An empty value stream yields the identity when SeedWithIdentity
// is set and ErrNoValues otherwise.
func (c Config) Reduce(r io.Reader, log *zap.Logger) (float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	var (
		acc float64
		n   int
	)
	if c.SeedWithIdentity {
		acc = c.Identity
	}
	for v := range c.values(cleanLines(sc), log) {
		if n == 0 && !c.SeedWithIdentity {
			acc = v
		} else {
			acc = c.Operation.Apply(acc, v)
		}
		n++
	}

	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading input: %w", err)
	}
	if n == 0 && !c.SeedWithIdentity {
		return 0, ErrNoValues
	}
	return acc, nil
}
