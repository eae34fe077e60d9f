package roman

var (
	thousands = [...]string{"", "M", "MM", "MMM"}
	hundreds  = [...]string{"", "C", "CC", "CCC", "CD", "D", "DC", "DCC", "DCCC", "CM"}
	tens      = [...]string{"", "X", "XX", "XXX", "XL", "L", "LX", "LXX", "LXXX", "XC"}
	units     = [...]string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"}
)

// PlaceValue encodes each decimal place independently from lookup tables.
// It must agree with Greedy for every input.
type PlaceValue struct{}

var _ Converter = PlaceValue{}

func (PlaceValue) Convert(decimal int) Numeral {
	if !IsValid(decimal) {
		return Absent()
	}

	return Present(thousands[decimal/1000] +
		hundreds[decimal%1000/100] +
		tens[decimal%100/10] +
		units[decimal%10])
}
