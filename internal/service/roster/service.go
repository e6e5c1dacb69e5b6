package roster

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chartpro/emr-api/internal/model"
	"github.com/chartpro/emr-api/internal/repository"
	apperrors "github.com/chartpro/emr-api/pkg/errors"
	"github.com/chartpro/emr-api/pkg/metrics"
)

type RosterService interface {
	AddPatient(ctx context.Context) (*model.Patient, error)
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
	ListPatients(ctx context.Context, query string) ([]model.Patient, error)
	UpdatePatient(ctx context.Context, id string, patch *model.PatientPatch) error
	AddVital(ctx context.Context, patientID string, vital model.VitalEntry) error
	AddNote(ctx context.Context, patientID string, note model.Note) error
	ListNotes(ctx context.Context, patientID, query string) ([]model.Note, error)
	GetNote(ctx context.Context, patientID, noteID string) (*model.Note, error)
	AddListItem(ctx context.Context, patientID string, field ListField, value string) error
	RemoveListItem(ctx context.Context, patientID string, field ListField, index int) error
	AddICD10(ctx context.Context, patientID, code string) error
	RemoveICD10(ctx context.Context, patientID, code string) error
	Export(ctx context.Context) ([]model.Patient, error)
	Version() uint64
}

// ListField names a patient-scoped free-text list.
type ListField string

const (
	FieldProblems  ListField = "problems"
	FieldAllergies ListField = "allergies"
	FieldMeds      ListField = "meds"
)

// Service owns the in-memory roster, the single source of truth for a
// session. One mutex serializes every mutation, so each list append reads
// the latest committed state and the stale-snapshot lost-update hazard of a
// read-then-replace port cannot occur. Every mutation re-serializes the
// whole roster to the persistent store.
type Service struct {
	mu      sync.RWMutex
	repo    repository.ChartRepository
	roster  []model.Patient
	version uint64
	metrics *metrics.Metrics
}

func NewService(ctx context.Context, repo repository.ChartRepository, m *metrics.Metrics) *Service {
	s := &Service{
		repo:    repo,
		roster:  repo.LoadRoster(ctx),
		metrics: m,
	}
	m.RosterSize.Set(float64(len(s.roster)))
	return s
}

// AddPatient creates a patient with placeholder demographics, inserts it at
// the front of the roster and returns it. Always succeeds apart from
// persistence failures.
func (s *Service) AddPatient(ctx context.Context) (*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Patient{
		ID:        uuid.NewString(),
		FirstName: "New",
		LastName:  "Patient",
		DOB:       "2000-01-01",
		Sex:       "U",
		MRN:       fmt.Sprintf("MRN-%d", time.Now().UnixMilli()),
		Allergies: []string{},
		Problems:  []string{},
		Meds:      []string{},
		Vitals:    []model.VitalEntry{},
		Notes:     []model.Note{},
	}
	s.roster = append([]model.Patient{p}, s.roster...)

	if err := s.persist(ctx, "add_patient"); err != nil {
		return nil, err
	}
	out := clonePatient(&p)
	return &out, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.find(id)
	if p == nil {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	out := clonePatient(p)
	return &out, nil
}

// ListPatients returns the roster, optionally narrowed by a search query.
func (s *Service) ListPatients(_ context.Context, query string) ([]model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FilterPatients(cloneRoster(s.roster), query), nil
}

// UpdatePatient merges the patch into the matching patient. An unknown id
// is a no-op, not an error.
func (s *Service) UpdatePatient(ctx context.Context, id string, patch *model.PatientPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(id)
	if p == nil {
		return nil
	}
	patch.Apply(p)
	return s.persist(ctx, "update_patient")
}

// AddVital appends an entry to the patient's vitals timeline. Unknown
// patient is a no-op.
func (s *Service) AddVital(ctx context.Context, patientID string, vital model.VitalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(patientID)
	if p == nil {
		return nil
	}
	p.Vitals = append(p.Vitals, vital)
	return s.persist(ctx, "add_vital")
}

// AddNote prepends the note so the patient's notes stay most-recent-first.
func (s *Service) AddNote(ctx context.Context, patientID string, note model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(patientID)
	if p == nil {
		return apperrors.NewNotFound("patient", nil)
	}
	p.Notes = append([]model.Note{note}, p.Notes...)
	s.metrics.NotesSaved.Inc()
	return s.persist(ctx, "add_note")
}

func (s *Service) ListNotes(ctx context.Context, patientID, query string) ([]model.Note, error) {
	p, err := s.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return FilterNotes(p.Notes, query), nil
}

func (s *Service) GetNote(ctx context.Context, patientID, noteID string) (*model.Note, error) {
	p, err := s.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	for i := range p.Notes {
		if p.Notes[i].ID == noteID {
			return &p.Notes[i], nil
		}
	}
	return nil, apperrors.NewNotFound("note", nil)
}

// AddListItem appends a trimmed value to one of the patient's free-text
// lists. Blank input is silently ignored.
func (s *Service) AddListItem(ctx context.Context, patientID string, field ListField, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(patientID)
	if p == nil {
		return nil
	}
	switch field {
	case FieldProblems:
		p.Problems = append(p.Problems, value)
	case FieldAllergies:
		p.Allergies = append(p.Allergies, value)
	case FieldMeds:
		p.Meds = append(p.Meds, value)
	default:
		return apperrors.NewBadRequest(fmt.Sprintf("unknown list field %q", field), nil)
	}
	return s.persist(ctx, "add_"+string(field))
}

// RemoveListItem drops the entry at index. Out-of-range indexes are
// ignored.
func (s *Service) RemoveListItem(ctx context.Context, patientID string, field ListField, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(patientID)
	if p == nil {
		return nil
	}
	var list *[]string
	switch field {
	case FieldProblems:
		list = &p.Problems
	case FieldAllergies:
		list = &p.Allergies
	case FieldMeds:
		list = &p.Meds
	default:
		return apperrors.NewBadRequest(fmt.Sprintf("unknown list field %q", field), nil)
	}
	if index < 0 || index >= len(*list) {
		return nil
	}
	*list = append((*list)[:index], (*list)[index+1:]...)
	return s.persist(ctx, "remove_"+string(field))
}

// AddICD10 appends a diagnosis code to the patient. Blank codes are
// ignored.
func (s *Service) AddICD10(ctx context.Context, patientID, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(patientID)
	if p == nil {
		return nil
	}
	p.ICD10 = append(p.ICD10, code)
	return s.persist(ctx, "add_icd10")
}

// RemoveICD10 drops the first occurrence of the code.
func (s *Service) RemoveICD10(ctx context.Context, patientID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(patientID)
	if p == nil {
		return nil
	}
	for i, c := range p.ICD10 {
		if c == code {
			p.ICD10 = append(p.ICD10[:i], p.ICD10[i+1:]...)
			return s.persist(ctx, "remove_icd10")
		}
	}
	return nil
}

// Export returns a copy of the full roster for serialization.
func (s *Service) Export(_ context.Context) ([]model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRoster(s.roster), nil
}

// Version increments on every committed mutation; read caches key on it.
func (s *Service) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// persist re-serializes the whole roster. Called with the mutex held.
func (s *Service) persist(ctx context.Context, operation string) error {
	s.version++
	s.metrics.RosterMutations.WithLabelValues(operation).Inc()
	s.metrics.RosterSize.Set(float64(len(s.roster)))
	if err := s.repo.SaveRoster(ctx, s.roster); err != nil {
		return fmt.Errorf("failed to persist roster: %w", err)
	}
	return nil
}

func (s *Service) find(id string) *model.Patient {
	for i := range s.roster {
		if s.roster[i].ID == id {
			return &s.roster[i]
		}
	}
	return nil
}
