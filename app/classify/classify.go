// Package classify assigns topic categories to news text by keyword lookup.
//
// Matching is plain substring containment on lower-cased text and is not
// token bounded: "war" also matches "warranty" or "software". This is a
// known precision limitation that downstream consumers depend on.
package classify

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Classifier struct {
	rules    []Rule
	tieBreak []Category
	fallback Category
}

// NewClassifier builds a classifier over rules (matching order) and
// tieBreak (dominance order). Keywords are lower-cased once here.
func NewClassifier(rules []Rule, tieBreak []Category) *Classifier {
	lowered := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, keyword := range rule.Keywords {
			keyword = lower(keyword)
			if keyword == "" {
				continue
			}
			keywords = append(keywords, keyword)
		}
		lowered = append(lowered, Rule{Category: rule.Category, Keywords: keywords})
	}

	return &Classifier{
		rules:    lowered,
		tieBreak: slices.Clone(tieBreak),
		fallback: Others,
	}
}

var defaultClassifier = NewClassifier(Taxonomy, TieBreakOrder)

// Default returns the classifier over the built-in taxonomy.
func Default() *Classifier {
	return defaultClassifier
}

// Classify returns the first category whose keyword occurs in text.
func Classify(text string) Category {
	return defaultClassifier.Classify(text)
}

// DominantCategory returns the most frequent category using the built-in
// tie-break order.
func DominantCategory(categories []Category) Category {
	return defaultClassifier.DominantCategory(categories)
}

func (c *Classifier) Classify(text string) Category {
	if text == "" {
		return c.fallback
	}

	t := lower(text)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(t, keyword) {
				return rule.Category
			}
		}
	}

	return c.fallback
}

func (c *Classifier) DominantCategory(categories []Category) Category {
	if len(categories) == 0 {
		return c.fallback
	}

	counts := make(map[Category]int)
	for _, category := range categories {
		if category == "" {
			category = c.fallback
		}
		counts[category]++
	}

	// Walk candidates in tie-break order so the first maximum wins. Tags
	// missing from the order list rank after every listed tag.
	candidates := slices.Clone(c.tieBreak)
	var unlisted []Category
	for category := range counts {
		if !slices.Contains(candidates, category) {
			unlisted = append(unlisted, category)
		}
	}
	slices.Sort(unlisted)
	candidates = append(candidates, unlisted...)

	best := c.fallback
	bestCount := 0
	for _, category := range candidates {
		if counts[category] > bestCount {
			best = category
			bestCount = counts[category]
		}
	}

	return best
}

// lower applies Unicode full case folding to lower case. A Caser keeps
// state, so a fresh one is created per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
