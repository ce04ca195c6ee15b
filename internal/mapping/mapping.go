// Package mapping matches extracted document columns to template fields. All
// functions are pure: the same template fields and column list always produce
// the same result, so the pipeline stays testable without re-running the
// extraction step.
package mapping

import (
	"strings"

	"github.com/tuanphm/compliance-be/internal/api/domain"
)

// FieldMapping maps an extracted column name to a template field key. A
// column absent from the map (or mapped to the empty string) is unmapped.
type FieldMapping map[string]string

// minScore is the similarity floor below which a column stays unmapped.
const minScore = 0.5

// Suggest proposes a mapping from extracted columns to the template's
// creation fields by name similarity. Matching is case- and
// punctuation-insensitive; each field is claimed by at most one column (first
// column in input order wins). Columns with no sufficiently close field are
// left unmapped.
func Suggest(fields []domain.TemplateField, columns []string) FieldMapping {
	candidates := make([]domain.TemplateField, 0, len(fields))
	for _, f := range fields {
		if f.FieldCategory == domain.FieldCategoryCreation {
			candidates = append(candidates, f)
		}
	}

	suggested := make(FieldMapping, len(columns))
	claimed := make(map[string]bool, len(candidates))

	for _, column := range columns {
		bestKey := ""
		bestScore := 0.0
		bestOrder := 0

		for _, f := range candidates {
			if claimed[f.FieldKey] {
				continue
			}
			score := similarity(column, f.FieldLabel)
			if keyScore := similarity(column, f.FieldKey); keyScore > score {
				score = keyScore
			}
			if score < minScore {
				continue
			}
			// Strictly-better score wins; on a tie the field with the
			// lower display order does, keeping suggestions stable.
			if score > bestScore || (score == bestScore && bestKey != "" && f.DisplayOrder < bestOrder) {
				bestKey = f.FieldKey
				bestScore = score
				bestOrder = f.DisplayOrder
			}
		}

		if bestKey != "" {
			suggested[column] = bestKey
			claimed[bestKey] = true
		}
	}

	return suggested
}

// similarity scores two names in [0, 1]: exact normalized match, then
// substring containment, then word overlap.
func similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}
	return wordOverlap(na, nb)
}

// normalize lowercases a name and collapses punctuation to single spaces.
func normalize(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// wordOverlap is the Jaccard index over the whitespace-split word sets.
func wordOverlap(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}
	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	common := 0
	for w := range setA {
		if setB[w] {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	return float64(common) / float64(union)
}
