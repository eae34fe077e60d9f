package roman

import "encoding/json"

// Numeral is the result of a conversion: either a present Roman numeral
// or an absent value for out-of-domain input. The zero value is absent.
type Numeral struct {
	value   string
	present bool
}

// Present wraps a Roman numeral string
func Present(s string) Numeral {
	return Numeral{value: s, present: true}
}

// Absent returns the empty result
func Absent() Numeral {
	return Numeral{}
}

// Get returns the numeral and whether it is present
func (n Numeral) Get() (string, bool) {
	return n.value, n.present
}

func (n Numeral) IsPresent() bool {
	return n.present
}

func (n Numeral) IsAbsent() bool {
	return !n.present
}

// OrElse returns the numeral, or fallback when absent
func (n Numeral) OrElse(fallback string) string {
	if !n.present {
		return fallback
	}
	return n.value
}

func (n Numeral) String() string {
	if !n.present {
		return "<absent>"
	}
	return n.value
}

// MarshalJSON encodes an absent numeral as null
func (n Numeral) MarshalJSON() ([]byte, error) {
	if !n.present {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}
