package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chartpro/emr-api/internal/handler"
	"github.com/chartpro/emr-api/internal/render"
	"github.com/chartpro/emr-api/internal/service/roster"
)

type Handler struct {
	service roster.RosterService
}

func NewHandler(service roster.RosterService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/export", h.ExportRoster)
}

// ExportRoster downloads the full roster as a timestamped JSON document.
func (h *Handler) ExportRoster(c *gin.Context) {
	patients, err := h.service.Export(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	filename, data, err := render.ExportRoster(patients, time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}
