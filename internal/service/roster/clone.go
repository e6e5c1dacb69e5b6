package roster

import "github.com/chartpro/emr-api/internal/model"

// clonePatient copies a patient deeply enough that callers cannot reach the
// service's committed slices.
func clonePatient(p *model.Patient) model.Patient {
	out := *p
	out.Allergies = append([]string(nil), p.Allergies...)
	out.Problems = append([]string(nil), p.Problems...)
	out.Meds = append([]string(nil), p.Meds...)
	out.ICD10 = append([]string(nil), p.ICD10...)
	out.Vitals = append([]model.VitalEntry(nil), p.Vitals...)
	out.Notes = make([]model.Note, len(p.Notes))
	for i := range p.Notes {
		out.Notes[i] = cloneNote(&p.Notes[i])
	}
	return out
}

func cloneNote(n *model.Note) model.Note {
	out := *n
	out.Objective.Goniometry = append([]model.GoniometryRow(nil), n.Objective.Goniometry...)
	out.Objective.MMT = append([]model.MMTRow(nil), n.Objective.MMT...)
	return out
}

func cloneRoster(roster []model.Patient) []model.Patient {
	out := make([]model.Patient, len(roster))
	for i := range roster {
		out[i] = clonePatient(&roster[i])
	}
	return out
}
