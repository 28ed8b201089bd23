package css

import (
	"sort"
	"strings"
)

// Selector is a simple compound selector: an optional tag name, an optional
// id, and any number of class names. Empty strings mean "not specified".
// A selector with no constraints is the universal selector and matches
// every element.
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity is the matching strength of a selector: id count, class count,
// tag count. Comparison is lexicographic, id weighted highest.
type Specificity struct {
	A int // id selectors
	B int // class selectors
	C int // type selectors
}

// Specificity computes the selector's specificity per
// http://www.w3.org/TR/selectors/#specificity
func (s Selector) Specificity() Specificity {
	spec := Specificity{B: len(s.Classes)}
	if s.ID != "" {
		spec.A = 1
	}
	if s.TagName != "" {
		spec.C = 1
	}
	return spec
}

// Less reports whether s orders before other (lower specificity first).
func (s Specificity) Less(other Specificity) bool {
	if s.A != other.A {
		return s.A < other.A
	}
	if s.B != other.B {
		return s.B < other.B
	}
	return s.C < other.C
}

func (s Selector) String() string {
	var sb strings.Builder
	sb.WriteString(s.TagName)
	if s.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(s.ID)
	}
	for _, class := range s.Classes {
		sb.WriteByte('.')
		sb.WriteString(class)
	}
	if sb.Len() == 0 {
		return "*"
	}
	return sb.String()
}

// Declaration is one property: value pair. A declaration list may repeat a
// name; the later entry is authoritative.
type Declaration struct {
	Name  string
	Value Value
}

// Rule is a selector group plus its declarations. Selectors are kept sorted
// by descending specificity so matching can stop at the first hit.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// NewRule builds a rule, sorting its selectors highest-specificity first.
func NewRule(selectors []Selector, declarations []Declaration) Rule {
	sort.SliceStable(selectors, func(i, j int) bool {
		return selectors[j].Specificity().Less(selectors[i].Specificity())
	})
	return Rule{Selectors: selectors, Declarations: declarations}
}

// Stylesheet is an ordered list of rules. Document order is the cascade
// tie-break for rules of equal specificity.
type Stylesheet struct {
	Rules []Rule
}
