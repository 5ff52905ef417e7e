// Package classify assigns a prompt category to free-text input.
package classify

import (
	"strings"

	"github.com/thebtf/promptdeck/pkg/models"
)

// Rule maps a category to the keywords that select it.
type Rule struct {
	Category models.Category
	Keywords []string
}

// rules is evaluated in order; the first rule with a matching keyword wins.
var rules = []Rule{
	{models.CategoryEducation, []string{"education", "learn", "teach", "study", "school", "university", "college"}},
	{models.CategoryCreativeWriting, []string{"write", "story", "novel", "poem", "fiction", "narrative", "author"}},
	{models.CategoryProgramming, []string{"code", "programming", "software", "developer", "app", "website", "algorithm"}},
	{models.CategoryArt, []string{"art", "design", "draw", "paint", "illustration", "graphic", "visual"}},
	{models.CategoryBusiness, []string{"business", "startup", "company", "entrepreneur", "market", "product", "service"}},
	{models.CategoryPersonal, []string{"life", "personal", "habit", "routine", "health", "wellness", "self"}},
}

// Classify returns the category of the first rule whose keyword occurs in text
// (case-insensitive substring match), or CategoryGeneral when none does.
func Classify(text string) models.Category {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if containsAny(lower, r.Keywords) {
			return r.Category
		}
	}
	return models.CategoryGeneral
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		kw := make([]string, len(r.Keywords))
		copy(kw, r.Keywords)
		out[i] = Rule{Category: r.Category, Keywords: kw}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
