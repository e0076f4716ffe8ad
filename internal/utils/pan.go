package utils

import (
	"fmt"
	"sync/atomic"
)

// panLength is the full card number length including the Luhn check digit.
const panLength = 16

// Generator produces Luhn-valid card numbers from a fixed BIN prefix and a
// monotonically increasing sequence. The sequence advances atomically, so
// Generate is safe for concurrent use and never returns the same number
// twice until the sequence space for the BIN is exhausted.
type Generator struct {
	bin string
	cap uint64 // sequence values per BIN; the sequence wraps at this bound
	seq atomic.Uint64
}

// NewGenerator creates a generator for the given BIN, starting the sequence
// at seed. The BIN must be short enough to leave room for the sequence and
// the check digit.
func NewGenerator(bin string, seed uint64) (*Generator, error) {
	if len(bin) == 0 || len(bin) >= panLength-1 {
		return nil, fmt.Errorf("invalid BIN length: %d", len(bin))
	}
	for _, r := range bin {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("BIN must be numeric, got %q", bin)
		}
	}
	capacity := uint64(1)
	for i := 0; i < panLength-len(bin)-1; i++ {
		capacity *= 10
	}
	g := &Generator{bin: bin, cap: capacity}
	g.seq.Store(seed)
	return g, nil
}

// Generate returns the next card number: BIN, zero-padded sequence, Luhn
// check digit, always exactly 16 digits. The sequence wraps when it exhausts
// the digits left by the BIN; uniqueness past the wrap is guaranteed by the
// UNIQUE constraint on stored card numbers, not by the generator.
func (g *Generator) Generate() string {
	seq := (g.seq.Add(1) - 1) % g.cap
	width := panLength - len(g.bin) - 1
	base := fmt.Sprintf("%s%0*d", g.bin, width, seq)
	return base + string('0'+byte(LuhnCheckDigit(base)))
}

// LuhnCheckDigit computes the digit that makes number+digit pass Luhn
// validation: walking right to left, every second digit is doubled and,
// if the double exceeds 9, reduced by 9 before summing.
func LuhnCheckDigit(number string) int {
	sum := 0
	double := true
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return (10 - sum%10) % 10
}

// ValidLuhn reports whether the full number (check digit included) passes
// Luhn validation.
func ValidLuhn(number string) bool {
	if len(number) < 2 {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	return LuhnCheckDigit(number[:len(number)-1]) == int(number[len(number)-1]-'0')
}
