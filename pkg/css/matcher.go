package css

import "folio/pkg/html"

// Matches returns true if the element satisfies every constraint the
// selector specifies. Text nodes never match.
func Matches(node *html.Node, selector Selector) bool {
	if node.Type != html.ElementNode {
		return false
	}

	if selector.TagName != "" && selector.TagName != node.TagName {
		return false
	}

	if selector.ID != "" {
		if id, ok := node.ID(); !ok || id != selector.ID {
			return false
		}
	}

	if len(selector.Classes) > 0 {
		classes := node.Classes()
		for _, class := range selector.Classes {
			if _, ok := classes[class]; !ok {
				return false
			}
		}
	}

	return true
}

// MatchedRule pairs a rule with the specificity of its most specific
// matching selector.
type MatchedRule struct {
	Specificity Specificity
	Rule        *Rule
}

// MatchRule returns the rule paired with the specificity of its first
// matching selector. Because a rule's selectors are pre-sorted by descending
// specificity, the first match is also the most specific one.
func MatchRule(node *html.Node, rule *Rule) (MatchedRule, bool) {
	for i := range rule.Selectors {
		if Matches(node, rule.Selectors[i]) {
			return MatchedRule{Specificity: rule.Selectors[i].Specificity(), Rule: rule}, true
		}
	}
	return MatchedRule{}, false
}

// MatchingRules returns all rules matching the element, in document order.
// This is a linear scan of every rule; large documents would want rules
// indexed by tag name, id and class, but at this scale a scan is fine.
func MatchingRules(node *html.Node, stylesheet *Stylesheet) []MatchedRule {
	matches := make([]MatchedRule, 0)
	for i := range stylesheet.Rules {
		if matched, ok := MatchRule(node, &stylesheet.Rules[i]); ok {
			matches = append(matches, matched)
		}
	}
	return matches
}
