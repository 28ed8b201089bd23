package css

import "fmt"

// Unit is a length unit. Only px exists today; ToPx switches on the unit so
// new units can be added without touching call sites that want px-or-zero.
type Unit int

const (
	Px Unit = iota
)

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// ValueKind discriminates the Value union.
type ValueKind int

const (
	KeywordValue ValueKind = iota
	LengthValue
	ColorValue
)

// Value is a property value: a keyword, a length with unit, or a color.
// Values are plain comparable structs, so == is structural equality.
type Value struct {
	Kind    ValueKind
	Keyword string
	Length  float64
	Unit    Unit
	Color   Color
}

// Keyword returns a keyword value such as "auto" or "block".
func Keyword(name string) Value {
	return Value{Kind: KeywordValue, Keyword: name}
}

// Length returns a numeric length value.
func Length(n float64, unit Unit) Value {
	return Value{Kind: LengthValue, Length: n, Unit: unit}
}

// ColorVal returns a color value.
func ColorVal(c Color) Value {
	return Value{Kind: ColorValue, Color: c}
}

// ToPx coerces the value to a pixel number. Non-lengths coerce to 0.
func (v Value) ToPx() float64 {
	if v.Kind != LengthValue {
		return 0
	}
	switch v.Unit {
	case Px:
		return v.Length
	}
	return 0
}

func (v Value) String() string {
	switch v.Kind {
	case KeywordValue:
		return v.Keyword
	case LengthValue:
		return fmt.Sprintf("%gpx", v.Length)
	case ColorValue:
		return fmt.Sprintf("#%02x%02x%02x", v.Color.R, v.Color.G, v.Color.B)
	}
	return ""
}
