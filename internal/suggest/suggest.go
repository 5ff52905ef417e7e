// Package suggest turns a topic into templated prompt suggestions.
package suggest

import (
	"strings"

	"github.com/thebtf/promptdeck/pkg/models"
)

// Family names a fixed set of base templates.
type Family string

const (
	FamilyEducation   Family = "education"
	FamilyArt         Family = "art"
	FamilyProgramming Family = "programming"
	FamilyWriting     Family = "writing"
	FamilyBusiness    Family = "business"
	FamilyGeneric     Family = "generic"
)

// placeholder is replaced verbatim with the user input.
const placeholder = "{input}"

type familyRule struct {
	family    Family
	keywords  []string
	templates [models.SuggestionCount]string
}

// familyRules is evaluated in order; no match selects FamilyGeneric.
// The keyword sets differ from the classifier's on purpose.
var familyRules = []familyRule{
	{
		family:   FamilyEducation,
		keywords: []string{"learn", "teach", "education", "school", "study", "course", "tutorial"},
		templates: [models.SuggestionCount]string{
			"Create a lesson plan about {input}",
			"Design an interactive quiz on {input}",
			"Write an educational article explaining {input}",
			"Develop a curriculum covering {input}",
			"Make a visual guide to understand {input}",
		},
	},
	{
		family:   FamilyArt,
		keywords: []string{"design", "art", "draw", "paint", "create", "illustration", "graphic"},
		templates: [models.SuggestionCount]string{
			"Create a visual composition featuring {input}",
			"Design a poster representing {input}",
			"Illustrate a concept inspired by {input}",
			"Make a digital artwork exploring {input}",
			"Develop a style guide based on {input}",
		},
	},
	{
		family:   FamilyProgramming,
		keywords: []string{"code", "program", "develop", "software", "app", "website", "algorithm"},
		templates: [models.SuggestionCount]string{
			"Write a function that implements {input}",
			"Create a tutorial on building {input}",
			"Design a system architecture for {input}",
			"Develop an algorithm to solve {input}",
			"Write pseudocode for {input}",
		},
	},
	{
		family:   FamilyWriting,
		keywords: []string{"write", "story", "novel", "blog", "article", "essay", "book"},
		templates: [models.SuggestionCount]string{
			"Write a short story about {input}",
			"Create a character sketch based on {input}",
			"Develop a plot outline involving {input}",
			"Write a dialogue between characters discussing {input}",
			"Create a setting description inspired by {input}",
		},
	},
	{
		family:   FamilyBusiness,
		keywords: []string{"business", "startup", "company", "market", "product", "service", "entrepreneur"},
		templates: [models.SuggestionCount]string{
			"Create a business plan for {input}",
			"Design a marketing strategy for {input}",
			"Develop a pricing model for {input}",
			"Write a value proposition for {input}",
			"Create a customer persona for {input}",
		},
	},
}

var genericTemplates = [models.SuggestionCount]string{
	"Write a story about {input}",
	"Create a tutorial on {input}",
	"Design a character based on {input}",
	"Develop a business idea around {input}",
	"Make a song lyric about {input}",
}

// enhancementTemplates are appended after the base set before truncation.
var enhancementTemplates = [models.SuggestionCount]string{
	"Create a mind map exploring different aspects of {input}",
	"Design an infographic that explains {input} visually",
	"Write a poem inspired by {input}",
	"Develop a fictional world where {input} is the central theme",
	"Create a comparative analysis between {input} and a related concept",
}

// Generator produces suggestions. The zero value keeps the default behavior:
// enhancement templates are generated and then truncated away.
type Generator struct {
	// Enhanced interleaves enhancement templates with the base set
	// (base, enhancement, base, enhancement, base) instead of truncating them away.
	Enhanced bool
}

// Generate returns exactly five suggestions for text using the default generator.
func Generate(text string) []string {
	return Generator{}.Generate(text)
}

// SelectFamily returns the base template family chosen for text.
func SelectFamily(text string) Family {
	return selectRule(text).family
}

// Candidates returns the ten-entry base-plus-enhancement sequence before truncation.
func Candidates(text string) []string {
	base := selectRule(text).templates
	out := make([]string, 0, 2*models.SuggestionCount)
	out = append(out, render(base[:], text)...)
	out = append(out, render(enhancementTemplates[:], text)...)
	return out
}

// Generate returns exactly five suggestions, each containing text verbatim.
func (g Generator) Generate(text string) []string {
	candidates := Candidates(text)
	if !g.Enhanced {
		return candidates[:models.SuggestionCount]
	}

	base := candidates[:models.SuggestionCount]
	extra := candidates[models.SuggestionCount:]
	out := make([]string, 0, models.SuggestionCount)
	for i := 0; len(out) < models.SuggestionCount; i++ {
		out = append(out, base[i])
		if len(out) < models.SuggestionCount {
			out = append(out, extra[i])
		}
	}
	return out
}

func selectRule(text string) familyRule {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, r := range familyRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r
			}
		}
	}
	return familyRule{family: FamilyGeneric, templates: genericTemplates}
}

func render(templates []string, input string) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = strings.ReplaceAll(t, placeholder, input)
	}
	return out
}
