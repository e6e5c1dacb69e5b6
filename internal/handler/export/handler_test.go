package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartpro/emr-api/internal/model"
	"github.com/chartpro/emr-api/internal/service/roster"
	"github.com/chartpro/emr-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test_export_handler")

type memRepo struct {
	roster []model.Patient
	tags   model.GlobalTags
}

func (r *memRepo) LoadRoster(context.Context) []model.Patient { return r.roster }
func (r *memRepo) SaveRoster(_ context.Context, roster []model.Patient) error {
	r.roster = roster
	return nil
}
func (r *memRepo) LoadTags(context.Context) model.GlobalTags { return r.tags }

func (r *memRepo) SaveTags(context.Context, model.GlobalTags) error { return nil }

func TestExportEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	seed := model.SeedPatients()
	svc := roster.NewService(context.Background(), &memRepo{roster: seed}, testMetrics)

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, "chartpro-lite-")
	assert.Contains(t, disposition, ".json")

	var exported []model.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exported))
	require.Len(t, exported, 2)
	assert.Equal(t, seed[0].MRN, exported[0].MRN)
}
