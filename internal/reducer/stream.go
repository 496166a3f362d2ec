package reducer

import (
	"bufio"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// kind classifies the outcome of interpreting one cleaned line.
type kind int

const (
	// kindValue carries a parsed number.
	kindValue kind = iota
	// kindSkip substitutes the identity for an ignored or silently failed line.
	kindSkip
	// kindStop terminates the stream; nothing past this line is read.
	kindStop
	// kindFail terminates the stream with a parse failure message.
	kindFail
)

// interpreted is the outcome of interpreting one cleaned line: a value to
// fold, an identity substitution, a terminator, or a parse failure.
type interpreted struct {
	kind  kind
	value float64
	fail  string
}

// cleanLines yields (index, trimmedText) pairs from the scanner, index
// starting at zero in input order. Leading and trailing whitespace is
// stripped; internal whitespace is preserved. Lines are pulled one at a
// time, so stopping the iteration leaves the rest of the input unread.
// A read error is left on the scanner for the caller to check.
func cleanLines(sc *bufio.Scanner) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := 0; sc.Scan(); i++ {
			if !yield(i, strings.TrimSpace(sc.Text())) {
				return
			}
		}
	}
}

// interpret decides what a single cleaned line contributes to the stream.
func (c Config) interpret(index int, text string, log *zap.Logger) interpreted {
	if index < c.IgnoreCount {
		log.Debug("Ignored value", zap.String("value", text), zap.Int("line", index+1))
		return interpreted{kind: kindSkip, value: c.Identity}
	}
	if text == "" {
		log.Debug("Found empty line, exiting", zap.Int("line", index+1))
		return interpreted{kind: kindStop}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return interpreted{kind: kindValue, value: v}
	}
	if c.Silent {
		log.Warn("Ignoring parse error",
			zap.Error(err), zap.String("value", text), zap.Int("line", index+1))
		return interpreted{kind: kindSkip, value: c.Identity}
	}
	log.Debug("Parse failure", zap.Error(err))
	return interpreted{
		kind: kindFail,
		fail: fmt.Sprintf("Failed to parse %s at line %d", text, index+1),
	}
}

// values projects interpreted lines onto the lazy stream of numbers the
// fold consumes. The sequence ends the instant a terminator or parse
// failure is produced; no further input is pulled from upstream.
func (c Config) values(lines iter.Seq2[int, string], log *zap.Logger) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i, text := range lines {
			iv := c.interpret(i, text, log)
			switch iv.kind {
			case kindStop:
				return
			case kindFail:
				log.Error(iv.fail)
				return
			}
			if !yield(iv.value) {
				return
			}
		}
	}
}
