package ai

import (
	"slices"
	"strings"
	"unicode"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

// SafetyTag is added to feedback that reports a physical hazard.
const SafetyTag = "safety"

// hazardTerms are the hazard words and phrases looked for in feedback.
// Single words match whole words only, so "bonfire" is not "fire".
var hazardTerms = []string{
	"fire",
	"caught fire",
	"smoke",
	"smoking",
	"spark",
	"sparks",
	"sparking",
	"sparked",
	"shock",
	"shocked",
	"electric shock",
	"burn",
	"burns",
	"burned",
	"burnt",
	"burning smell",
	"melt",
	"melted",
	"melting",
	"explode",
	"exploded",
	"explosion",
	"overheat",
	"overheats",
	"overheated",
	"overheating",
	"short circuit",
	"injury",
	"injured",
}

// obfuscation maps look-alike characters to the letters they stand for.
var obfuscation = strings.NewReplacer(
	"@", "a",
	"4", "a",
	"3", "e",
	"1", "i",
	"0", "o",
	"$", "s",
	"5", "s",
	"7", "t",
	"+", "t",
	"а", "a", // Cyrillic
	"е", "e",
	"і", "i",
	"о", "o",
	"р", "p",
)

// normalizeText lowercases text, undoes common character substitutions,
// turns everything but letters into single spaces and collapses runs of the
// same letter ("smmmoke" becomes "smoke").
func normalizeText(text string) string {
	cleaned := obfuscation.Replace(strings.ToLower(text))

	var b strings.Builder
	var last rune
	lastWasLetter, lastWasSpace := false, true
	for _, r := range cleaned {
		if unicode.IsLetter(r) {
			if lastWasLetter && r == last {
				continue
			}
			b.WriteRune(r)
			last, lastWasLetter, lastWasSpace = r, true, false
			continue
		}
		if !lastWasSpace {
			b.WriteRune(' ')
		}
		lastWasLetter, lastWasSpace = false, true
	}
	return strings.TrimSpace(b.String())
}

// normalizedHazards holds hazardTerms after normalizeText, index-aligned.
var normalizedHazards = func() []string {
	out := make([]string, len(hazardTerms))
	for i, t := range hazardTerms {
		out[i] = normalizeText(t)
	}
	return out
}()

// DetectHazards returns the hazard terms reported in text, in dictionary
// order. Phrases match anywhere; single words must match a whole word.
func DetectHazards(text string) []string {
	cleaned := normalizeText(text)
	if cleaned == "" {
		return nil
	}
	words := strings.Fields(cleaned)
	padded := " " + cleaned + " "

	var found []string
	for i, canonical := range normalizedHazards {
		if strings.Contains(canonical, " ") {
			if strings.Contains(padded, " "+canonical+" ") {
				found = append(found, hazardTerms[i])
			}
			continue
		}
		if slices.Contains(words, canonical) {
			found = append(found, hazardTerms[i])
		}
	}
	return found
}

// escalateHazards raises urgency to High and tags the analysis when text
// reports a hazard, whatever the classifier said.
func escalateHazards(a models.Analysis, text string) (models.Analysis, []string) {
	hazards := DetectHazards(text)
	if len(hazards) == 0 {
		return a, nil
	}
	a.Urgency = models.UrgencyHigh
	tags := []string{SafetyTag}
	for _, t := range a.Tags {
		if !strings.EqualFold(t, SafetyTag) {
			tags = append(tags, t)
		}
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	a.Tags = tags
	return a, hazards
}
