package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chartpro/emr-api/internal/model"
	"github.com/chartpro/emr-api/internal/store"
	"github.com/chartpro/emr-api/pkg/metrics"
)

// ChartRepository persists the two aggregates: the patient roster and the
// global tag list. Each save overwrites the whole blob.
type ChartRepository interface {
	LoadRoster(ctx context.Context) []model.Patient
	SaveRoster(ctx context.Context, roster []model.Patient) error
	LoadTags(ctx context.Context) model.GlobalTags
	SaveTags(ctx context.Context, tags model.GlobalTags) error
}

type chartRepository struct {
	store   store.Store
	metrics *metrics.Metrics
}

func NewChartRepository(s store.Store, m *metrics.Metrics) ChartRepository {
	return &chartRepository{store: s, metrics: m}
}

// LoadRoster returns the stored roster, or the seed roster when the blob is
// missing or unreadable. A corrupt blob is recovered from, never surfaced:
// losing a practice session beats refusing to start.
func (r *chartRepository) LoadRoster(ctx context.Context) []model.Patient {
	var roster []model.Patient
	if ok := r.load(ctx, store.KeyPatients, &roster); !ok || roster == nil {
		return model.SeedPatients()
	}
	return roster
}

func (r *chartRepository) SaveRoster(ctx context.Context, roster []model.Patient) error {
	return r.save(ctx, store.KeyPatients, roster)
}

// LoadTags returns the stored global tags, falling back to empty lists.
func (r *chartRepository) LoadTags(ctx context.Context) model.GlobalTags {
	var tags model.GlobalTags
	if ok := r.load(ctx, store.KeyTags, &tags); !ok {
		return model.DefaultTags()
	}
	if tags.ICD == nil {
		tags.ICD = []string{}
	}
	if tags.CPT == nil {
		tags.CPT = []string{}
	}
	return tags
}

func (r *chartRepository) SaveTags(ctx context.Context, tags model.GlobalTags) error {
	return r.save(ctx, store.KeyTags, tags)
}

func (r *chartRepository) load(ctx context.Context, key string, out interface{}) bool {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("store read failed, using default")
			r.metrics.StoreFallbacks.WithLabelValues(key).Inc()
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stored blob unreadable, using default")
		r.metrics.StoreFallbacks.WithLabelValues(key).Inc()
		return false
	}
	return true
}

func (r *chartRepository) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	r.metrics.StoreWrites.WithLabelValues(key).Inc()
	return nil
}
