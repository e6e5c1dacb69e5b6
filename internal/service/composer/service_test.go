package composer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartpro/emr-api/internal/model"
	apperrors "github.com/chartpro/emr-api/pkg/errors"
	"github.com/chartpro/emr-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test_composer")

// fakeSink records notes handed over on save.
type fakeSink struct {
	patients   map[string]*model.Patient
	saved      []model.Note
	savedFor   []string
	addNoteErr error
}

func newFakeSink(ids ...string) *fakeSink {
	s := &fakeSink{patients: make(map[string]*model.Patient)}
	for _, id := range ids {
		s.patients[id] = &model.Patient{ID: id}
	}
	return s
}

func (s *fakeSink) GetPatient(_ context.Context, id string) (*model.Patient, error) {
	p, ok := s.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	return p, nil
}

func (s *fakeSink) AddNote(_ context.Context, patientID string, note model.Note) error {
	if s.addNoteErr != nil {
		return s.addNoteErr
	}
	s.saved = append(s.saved, note)
	s.savedFor = append(s.savedFor, patientID)
	return nil
}

func fillRequired(t *testing.T, svc *Service, draftID string) {
	t.Helper()
	date := "2025-08-04"
	author := "Ellie H."
	cc := "Pain"
	assessment := "Findings consistent with right wrist pain."
	interventions := "97110"
	_, err := svc.UpdateDraft(context.Background(), draftID, &DraftPatch{
		Date:       &date,
		Author:     &author,
		Subjective: &SubjectivePatch{ChiefComplaint: &cc},
		Assessment: &assessment,
		Plan:       &PlanPatch{Interventions: &interventions},
	})
	require.NoError(t, err)
}

func TestStartDraftDefaults(t *testing.T) {
	svc := NewService(newFakeSink("p1"), testMetrics)

	view, err := svc.StartDraft(context.Background(), "p1")
	require.NoError(t, err)

	n := view.Note
	assert.Equal(t, time.Now().Format("2006-01-02"), n.Date)
	assert.Equal(t, "Student PTA", n.Author)
	assert.Equal(t, "SPTA", n.Role)
	assert.Equal(t, model.VisitTypeTreatment, n.VisitType)
	assert.Empty(t, n.Subjective.ChiefComplaint)
	assert.NotNil(t, n.Objective.Goniometry)
	assert.Empty(t, n.Objective.Goniometry)
	assert.Empty(t, n.Objective.MMT)
	assert.Equal(t, "Student PTA", n.Signature.Name)
	assert.True(t, n.Signature.CosignNeeded)
	assert.Equal(t, "CI", n.Signature.Cosigner)

	assert.False(t, view.CanSave, "fresh draft cannot be saved")
	assert.Contains(t, view.Missing, "subjective.chiefComplaint")
}

func TestStartDraftUnknownPatient(t *testing.T) {
	svc := NewService(newFakeSink(), testMetrics)
	_, err := svc.StartDraft(context.Background(), "ghost")
	assert.Error(t, err)
}

func TestSaveGate(t *testing.T) {
	svc := NewService(newFakeSink("p1"), testMetrics)
	ctx := context.Background()

	view, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)
	fillRequired(t, svc, view.ID)

	view, err = svc.GetDraft(ctx, view.ID)
	require.NoError(t, err)
	assert.True(t, view.CanSave)
	assert.Empty(t, view.Missing)

	// Clearing any one required field flips the gate back.
	empty := ""
	view, err = svc.UpdateDraft(ctx, view.ID, &DraftPatch{Assessment: &empty})
	require.NoError(t, err)
	assert.False(t, view.CanSave)
	assert.Equal(t, []string{"assessment"}, view.Missing)
}

func TestGateIgnoresOptionalFields(t *testing.T) {
	svc := NewService(newFakeSink("p1"), testMetrics)
	ctx := context.Background()

	view, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)
	fillRequired(t, svc, view.ID)

	location := "Right wrist"
	goals := "Increase wrist flexion"
	view, err = svc.UpdateDraft(ctx, view.ID, &DraftPatch{
		Subjective: &SubjectivePatch{PainLocation: &location},
		Plan:       &PlanPatch{Goals: &goals},
	})
	require.NoError(t, err)
	assert.True(t, view.CanSave, "optional fields never change the gate")
}

func TestAddGoniometryRowEmptyDegreesIgnored(t *testing.T) {
	svc := NewService(newFakeSink("p1"), testMetrics)
	ctx := context.Background()

	view, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)

	view, err = svc.AddGoniometryRow(ctx, view.ID, GoniometryRowInput{Side: model.SideRight, Joint: "Wrist", Motion: "Flexion", Degrees: ""})
	require.NoError(t, err)
	assert.Empty(t, view.Note.Objective.Goniometry)

	view, err = svc.AddGoniometryRow(ctx, view.ID, GoniometryRowInput{Side: model.SideRight, Joint: "Wrist", Motion: "Flexion", Degrees: "20", Position: "Seated"})
	require.NoError(t, err)
	require.Len(t, view.Note.Objective.Goniometry, 1)
	assert.Equal(t, 20.0, view.Note.Objective.Goniometry[0].Degrees)

	_, err = svc.AddGoniometryRow(ctx, view.ID, GoniometryRowInput{Degrees: "twenty"})
	assert.Error(t, err)
}

func TestAddMMTRow(t *testing.T) {
	svc := NewService(newFakeSink("p1"), testMetrics)
	ctx := context.Background()

	view, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)

	view, err = svc.AddMMTRow(ctx, view.ID, MMTRowInput{Muscle: "Wrist flexors", Side: model.SideRight, Grade: ""})
	require.NoError(t, err)
	assert.Empty(t, view.Note.Objective.MMT)

	view, err = svc.AddMMTRow(ctx, view.ID, MMTRowInput{Muscle: "Wrist flexors", Side: model.SideRight, Grade: "2"})
	require.NoError(t, err)
	require.Len(t, view.Note.Objective.MMT, 1)
	assert.Equal(t, 2, view.Note.Objective.MMT[0].Grade)

	_, err = svc.AddMMTRow(ctx, view.ID, MMTRowInput{Grade: "7"})
	assert.Error(t, err)
}

func TestSaveBlockedWhileIncomplete(t *testing.T) {
	sink := newFakeSink("p1")
	svc := NewService(sink, testMetrics)
	ctx := context.Background()

	view, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)

	_, err = svc.Save(ctx, view.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrIncomplete, appErr.Code)
	assert.Empty(t, sink.saved)

	// A blocked save keeps the draft alive.
	_, err = svc.GetDraft(ctx, view.ID)
	assert.NoError(t, err)
}

func TestSaveHandsNoteToRosterAndDiscardsDraft(t *testing.T) {
	sink := newFakeSink("p1")
	svc := NewService(sink, testMetrics)
	ctx := context.Background()

	view, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)
	fillRequired(t, svc, view.ID)

	note, err := svc.Save(ctx, view.ID)
	require.NoError(t, err)
	require.Len(t, sink.saved, 1)
	assert.Equal(t, note.ID, sink.saved[0].ID)
	assert.Equal(t, "p1", sink.savedFor[0])

	_, err = svc.GetDraft(ctx, view.ID)
	assert.Error(t, err, "composer is discarded after save")

	_, err = svc.Save(ctx, view.ID)
	assert.Error(t, err, "a saved draft cannot be saved twice")
}

func TestSaveKeepsDraftWhenRosterRejectsNote(t *testing.T) {
	sink := newFakeSink("p1")
	svc := NewService(sink, testMetrics)
	ctx := context.Background()

	view, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)
	fillRequired(t, svc, view.ID)

	sink.addNoteErr = errors.New("store unavailable")
	_, err = svc.Save(ctx, view.ID)
	require.Error(t, err)

	// The draft survives the failed persist and the retry succeeds.
	_, err = svc.GetDraft(ctx, view.ID)
	require.NoError(t, err)

	sink.addNoteErr = nil
	note, err := svc.Save(ctx, view.ID)
	require.NoError(t, err)
	require.Len(t, sink.saved, 1)
	assert.Equal(t, note.ID, sink.saved[0].ID)
}

func TestStartDraftReplacesOpenDraft(t *testing.T) {
	svc := NewService(newFakeSink("p1"), testMetrics)
	ctx := context.Background()

	first, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)
	second, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	_, err = svc.GetDraft(ctx, first.ID)
	assert.Error(t, err, "only one draft per patient")
}

func TestResetDraftOnPatientSwitch(t *testing.T) {
	svc := NewService(newFakeSink("p1", "p2"), testMetrics)
	ctx := context.Background()

	view, err := svc.StartDraft(ctx, "p1")
	require.NoError(t, err)

	svc.ResetDraft(ctx, "p1")
	_, err = svc.GetDraft(ctx, view.ID)
	assert.Error(t, err)

	// Resetting a patient without a draft is harmless.
	svc.ResetDraft(ctx, "p2")
}

func TestCanSaveIsPure(t *testing.T) {
	n := model.Note{
		Date:       "2025-08-04",
		Author:     "Ellie H.",
		Subjective: model.Subjective{ChiefComplaint: "Pain"},
		Assessment: "...",
		Plan:       model.Plan{Interventions: "97110"},
	}
	assert.True(t, CanSave(&n))

	n.Assessment = ""
	assert.False(t, CanSave(&n))
	assert.Equal(t, []string{"assessment"}, MissingFields(&n))
}
