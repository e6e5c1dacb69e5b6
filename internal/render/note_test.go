package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartpro/emr-api/internal/model"
)

func fixtureNote() *model.Note {
	return &model.Note{
		ID:        "n1",
		Date:      "2025-08-04",
		Author:    "Ellie H.",
		Role:      "SPTA",
		VisitType: model.VisitTypeEvaluation,
		Subjective: model.Subjective{
			ChiefComplaint: "Right wrist pain",
			PainAtRest:     "2",
		},
		Objective: model.Objective{
			HR: "72",
			Goniometry: []model.GoniometryRow{
				{Side: model.SideRight, Joint: "Wrist", Motion: "Flexion", Degrees: 20, Position: "pos"},
			},
			MMT: []model.MMTRow{
				{Side: model.SideRight, Muscle: "Wrist flexors", Grade: 2},
			},
		},
		Assessment: "Signs consistent with wrist sprain.",
		Plan:       model.Plan{Interventions: "97110 ther ex"},
		Signature:  model.Signature{Name: "Ellie H.", Title: "SPTA", CosignNeeded: true, Cosigner: "CI"},
	}
}

func TestNoteDocumentHeader(t *testing.T) {
	patient := &model.Patient{FirstName: "Lili", LastName: "Hiswan", MRN: "LH-01234"}

	doc, err := NoteDocument(patient, fixtureNote())
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "<title>SOAP Note - Hiswan, Lili</title>")
	assert.Contains(t, html, "Hiswan, Lili (MRN: LH-01234)")
	assert.Contains(t, html, "Date: 2025-08-04 | Author: Ellie H. (SPTA) | Visit: Evaluation")
}

func TestNoteDocumentMeasurementLines(t *testing.T) {
	doc, err := NoteDocument(&model.Patient{}, fixtureNote())
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "R Wrist Flexion: 20° (pos)")
	assert.Contains(t, html, "R Wrist flexors: 2/5")
}

func TestNoteDocumentDegreesKeepFraction(t *testing.T) {
	n := fixtureNote()
	n.Objective.Goniometry[0].Degrees = 22.5

	doc, err := NoteDocument(&model.Patient{}, n)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "R Wrist Flexion: 22.5° (pos)")
}

func TestNoteDocumentCosignSuffix(t *testing.T) {
	n := fixtureNote()

	doc, err := NoteDocument(&model.Patient{}, n)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Signature: Ellie H., SPTA (Co-sign required)")

	n.Signature.CosignNeeded = false
	doc, err = NoteDocument(&model.Patient{}, n)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "Co-sign required")
}

func TestNoteDocumentEmptyFieldsNeverFail(t *testing.T) {
	doc, err := NoteDocument(&model.Patient{}, &model.Note{})
	require.NoError(t, err)

	// Absent vitals render as a dash, not as blank gaps.
	assert.Contains(t, string(doc), "Vitals: HR -, RR -, BP -, SpO2 -")
	assert.Contains(t, string(doc), "Pain (rest/move): -/10, -/10")
}

func TestNoteDocumentEscapesPatientText(t *testing.T) {
	n := fixtureNote()
	n.Assessment = `<script>alert("x")</script>`

	doc, err := NoteDocument(&model.Patient{}, n)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "<script>alert")
}
