package dice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidNotation is returned for malformed or out-of-range dice notation.
var ErrInvalidNotation = errors.New("dice: invalid notation")

// MaxCount bounds the number of dice a single expression may roll.
const MaxCount = 1000

var notationPattern = regexp.MustCompile(`^(\d+)[dD](\d+)([+-]\d+)?$`)

// Expression represents a parsed dice expression ready to be rolled.
// Invariant: 1 <= Count <= MaxCount and Sides >= 1 after a successful Parse.
type Expression struct {
	Raw      string // trimmed input string
	Count    int    // number of dice
	Sides    int    // faces per die
	Modifier int    // flat modifier (may be negative)
}

// Parse parses NdM, NdM+K or NdM-K notation. Surrounding whitespace is
// trimmed and the separator may be either "d" or "D".
//
// Postcondition: Returns a valid Expression, or an error wrapping ErrInvalidNotation.
func Parse(notation string) (Expression, error) {
	s := strings.TrimSpace(notation)
	m := notationPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("%w: %q must look like NdM, NdM+K or NdM-K", ErrInvalidNotation, notation)
	}

	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 || count > MaxCount {
		return Expression{}, fmt.Errorf("%w: die count in %q must be 1-%d", ErrInvalidNotation, notation, MaxCount)
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil || sides < 1 {
		return Expression{}, fmt.Errorf("%w: die size in %q must be >= 1", ErrInvalidNotation, notation)
	}

	modifier := 0
	if m[3] != "" {
		modifier, err = strconv.Atoi(m[3])
		if err != nil {
			return Expression{}, fmt.Errorf("%w: modifier in %q: %v", ErrInvalidNotation, notation, err)
		}
	}

	return Expression{
		Raw:      s,
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
	}, nil
}

// MustParse parses expr and panics on error. Useful for package-level tables.
//
// Precondition: expr must be valid dice notation.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
