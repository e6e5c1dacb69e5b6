package roster

import (
	"strings"

	"github.com/chartpro/emr-api/internal/model"
)

// FilterPatients narrows the roster to patients whose first name, last name
// or MRN contains the query, case-insensitively. A blank query returns the
// input unchanged. The input slice is never mutated.
func FilterPatients(roster []model.Patient, query string) []model.Patient {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return roster
	}
	out := make([]model.Patient, 0, len(roster))
	for _, p := range roster {
		if containsFold(p.FirstName, q) || containsFold(p.LastName, q) || containsFold(p.MRN, q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterNotes narrows notes to those whose chief complaint, assessment or
// planned interventions contain the text. Order is preserved.
func FilterNotes(notes []model.Note, text string) []model.Note {
	q := strings.ToLower(text)
	if q == "" {
		return notes
	}
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		haystack := strings.Join([]string{n.Subjective.ChiefComplaint, n.Assessment, n.Plan.Interventions}, " ")
		if strings.Contains(strings.ToLower(haystack), q) {
			out = append(out, n)
		}
	}
	return out
}

func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}
