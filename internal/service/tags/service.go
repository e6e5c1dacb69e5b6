package tags

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chartpro/emr-api/internal/model"
	"github.com/chartpro/emr-api/internal/repository"
)

// Service owns the global tag list, shared across every patient's admin
// view and persisted independently of the roster.
type Service struct {
	mu   sync.Mutex
	repo repository.ChartRepository
	tags model.GlobalTags
}

func NewService(ctx context.Context, repo repository.ChartRepository) *Service {
	return &Service{
		repo: repo,
		tags: repo.LoadTags(ctx),
	}
}

func (s *Service) Get(_ context.Context) model.GlobalTags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyTags()
}

// AddFavoriteCPT appends a favorite CPT code. Blank input is ignored.
func (s *Service) AddFavoriteCPT(ctx context.Context, code string) (model.GlobalTags, error) {
	code = strings.TrimSpace(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if code != "" {
		s.tags.CPT = append(s.tags.CPT, code)
		if err := s.persist(ctx); err != nil {
			return model.GlobalTags{}, err
		}
	}
	return s.copyTags(), nil
}

// RemoveFavoriteCPT drops the first occurrence of the code; unknown codes
// are ignored.
func (s *Service) RemoveFavoriteCPT(ctx context.Context, code string) (model.GlobalTags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.tags.CPT {
		if c == code {
			s.tags.CPT = append(s.tags.CPT[:i], s.tags.CPT[i+1:]...)
			if err := s.persist(ctx); err != nil {
				return model.GlobalTags{}, err
			}
			break
		}
	}
	return s.copyTags(), nil
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.repo.SaveTags(ctx, s.tags); err != nil {
		return fmt.Errorf("failed to persist tags: %w", err)
	}
	return nil
}

func (s *Service) copyTags() model.GlobalTags {
	return model.GlobalTags{
		ICD: append([]string(nil), s.tags.ICD...),
		CPT: append([]string(nil), s.tags.CPT...),
	}
}
