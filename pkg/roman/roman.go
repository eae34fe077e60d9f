// Package roman converts decimal integers to Roman numerals.
package roman

import "strings"

const (
	// MinDecimal is the smallest value that has a Roman numeral
	MinDecimal = 1

	// MaxDecimal is the largest value expressible without vinculum notation
	MaxDecimal = 3999
)

// Converter maps a decimal to its Roman numeral, or to an absent result
// when the decimal is outside [MinDecimal, MaxDecimal].
type Converter interface {
	Convert(decimal int) Numeral
}

type symbol struct {
	value int
	roman string
}

// symbols must stay strictly descending by value
var symbols = [...]symbol{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// Greedy encodes by repeatedly taking the largest symbol that fits.
type Greedy struct{}

var _ Converter = Greedy{}

func (Greedy) Convert(decimal int) Numeral {
	if !IsValid(decimal) {
		return Absent()
	}

	var sb strings.Builder
	remaining := decimal
	for _, s := range symbols {
		for remaining >= s.value {
			sb.WriteString(s.roman)
			remaining -= s.value
		}
	}

	return Present(sb.String())
}

// IsValid reports whether decimal has a Roman numeral representation
func IsValid(decimal int) bool {
	return decimal >= MinDecimal && decimal <= MaxDecimal
}

// Convert returns the Roman numeral for decimal, or an absent Numeral
// when decimal is outside [MinDecimal, MaxDecimal].
func Convert(decimal int) Numeral {
	return Greedy{}.Convert(decimal)
}
