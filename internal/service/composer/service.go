package composer

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chartpro/emr-api/internal/model"
	apperrors "github.com/chartpro/emr-api/pkg/errors"
	"github.com/chartpro/emr-api/pkg/metrics"
)

// NoteSink receives finished notes. Satisfied by the roster service.
type NoteSink interface {
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
	AddNote(ctx context.Context, patientID string, note model.Note) error
}

// Service holds open SOAP drafts. A draft has exactly two states, drafting
// and saved; saving hands the note to the roster and discards the draft, so
// a composer instance is never reused across notes or patients.
type Service struct {
	mu        sync.Mutex
	sink      NoteSink
	drafts    map[string]*draft
	byPatient map[string]string
	metrics   *metrics.Metrics
}

type draft struct {
	id        string
	patientID string
	note      model.Note
}

// DraftView is the read model of an open draft, including the live state
// of the completeness gate.
type DraftView struct {
	ID        string     `json:"id"`
	PatientID string     `json:"patientId"`
	Note      model.Note `json:"note"`
	CanSave   bool       `json:"canSave"`
	Missing   []string   `json:"missing,omitempty"`
}

func NewService(sink NoteSink, m *metrics.Metrics) *Service {
	return &Service{
		sink:      sink,
		drafts:    make(map[string]*draft),
		byPatient: make(map[string]string),
		metrics:   m,
	}
}

// StartDraft opens a fresh pre-populated draft for the patient. An already
// open draft for the same patient is discarded first.
func (s *Service) StartDraft(ctx context.Context, patientID string) (*DraftView, error) {
	if _, err := s.sink.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byPatient[patientID]; ok {
		delete(s.drafts, old)
	}

	d := &draft{
		id:        uuid.NewString(),
		patientID: patientID,
		note:      newDraftNote(),
	}
	s.drafts[d.id] = d
	s.byPatient[patientID] = d.id
	s.metrics.DraftsActive.Set(float64(len(s.drafts)))

	return s.view(d), nil
}

func newDraftNote() model.Note {
	return model.Note{
		ID:        uuid.NewString(),
		Date:      time.Now().Format("2006-01-02"),
		Author:    "Student PTA",
		Role:      "SPTA",
		VisitType: model.VisitTypeTreatment,
		Objective: model.Objective{
			Goniometry: []model.GoniometryRow{},
			MMT:        []model.MMTRow{},
		},
		Signature: model.Signature{
			Name:         "Student PTA",
			Title:        "SPTA",
			CosignNeeded: true,
			Cosigner:     "CI",
		},
	}
}

// GetDraft returns the draft with its current gate state.
func (s *Service) GetDraft(_ context.Context, draftID string) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, apperrors.NewNotFound("draft", nil)
	}
	return s.view(d), nil
}

// UpdateDraft merges the patch into the draft and returns the new view;
// the gate is re-evaluated on every update.
func (s *Service) UpdateDraft(_ context.Context, draftID string, patch *DraftPatch) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, apperrors.NewNotFound("draft", nil)
	}
	patch.apply(&d.note)
	return s.view(d), nil
}

// AddGoniometryRow appends a range-of-motion row. An empty degrees value is
// ignored, matching the blank-submission policy of the rest of the form.
func (s *Service) AddGoniometryRow(_ context.Context, draftID string, row GoniometryRowInput) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, apperrors.NewNotFound("draft", nil)
	}
	if strings.TrimSpace(row.Degrees) == "" {
		return s.view(d), nil
	}
	degrees, err := strconv.ParseFloat(row.Degrees, 64)
	if err != nil {
		return nil, apperrors.NewBadRequest("degrees must be numeric", err)
	}
	d.note.Objective.Goniometry = append(d.note.Objective.Goniometry, model.GoniometryRow{
		Side:     row.Side,
		Joint:    row.Joint,
		Motion:   row.Motion,
		Degrees:  degrees,
		Position: row.Position,
	})
	return s.view(d), nil
}

// AddMMTRow appends a muscle test row. An empty grade is ignored; a grade
// outside 0-5 is rejected.
func (s *Service) AddMMTRow(_ context.Context, draftID string, row MMTRowInput) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, apperrors.NewNotFound("draft", nil)
	}
	if strings.TrimSpace(row.Grade) == "" {
		return s.view(d), nil
	}
	grade, err := strconv.Atoi(row.Grade)
	if err != nil || grade < 0 || grade > 5 {
		return nil, apperrors.NewBadRequest("grade must be an integer 0-5", err)
	}
	d.note.Objective.MMT = append(d.note.Objective.MMT, model.MMTRow{
		Muscle: row.Muscle,
		Side:   row.Side,
		Grade:  grade,
	})
	return s.view(d), nil
}

// Save emits the draft as a finished note. The completeness gate is the
// only enforcement of note completeness; there is no later revalidation.
// The draft is discarded only once the roster has accepted the note, so a
// failed persist leaves it open for retry.
func (s *Service) Save(ctx context.Context, draftID string) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, apperrors.NewNotFound("draft", nil)
	}
	if missing := MissingFields(&d.note); len(missing) > 0 {
		s.metrics.SavesBlocked.Inc()
		return nil, apperrors.NewIncomplete(missing)
	}

	note := d.note
	if err := s.sink.AddNote(ctx, d.patientID, note); err != nil {
		return nil, err
	}
	delete(s.drafts, draftID)
	delete(s.byPatient, d.patientID)
	s.metrics.DraftsActive.Set(float64(len(s.drafts)))
	return &note, nil
}

// ResetDraft discards the patient's open draft, if any. Called when the
// active patient changes so a draft never leaks across patients.
func (s *Service) ResetDraft(_ context.Context, patientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byPatient[patientID]; ok {
		delete(s.drafts, id)
		delete(s.byPatient, patientID)
		s.metrics.DraftsActive.Set(float64(len(s.drafts)))
	}
}

func (s *Service) view(d *draft) *DraftView {
	missing := MissingFields(&d.note)
	return &DraftView{
		ID:        d.id,
		PatientID: d.patientID,
		Note:      d.note,
		CanSave:   len(missing) == 0,
		Missing:   missing,
	}
}

// CanSave reports whether the note passes the completeness gate. It is a
// pure function of the five required fields.
func CanSave(n *model.Note) bool {
	return len(MissingFields(n)) == 0
}

// MissingFields lists the required fields that are still empty: date,
// author, chief complaint, assessment and planned interventions.
func MissingFields(n *model.Note) []string {
	var missing []string
	if n.Date == "" {
		missing = append(missing, "date")
	}
	if n.Author == "" {
		missing = append(missing, "author")
	}
	if n.Subjective.ChiefComplaint == "" {
		missing = append(missing, "subjective.chiefComplaint")
	}
	if n.Assessment == "" {
		missing = append(missing, "assessment")
	}
	if n.Plan.Interventions == "" {
		missing = append(missing, "plan.interventions")
	}
	return missing
}
