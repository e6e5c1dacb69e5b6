package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chartpro/emr-api/internal/handler"
	"github.com/chartpro/emr-api/internal/model"
	"github.com/chartpro/emr-api/internal/service/tags"
)

// Handler serves the admin surface: the global favorite-CPT tag list and
// the advisory red-flag thresholds.
type Handler struct {
	tags *tags.Service
}

func NewHandler(tagsSvc *tags.Service) *Handler {
	return &Handler{tags: tagsSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	t := r.Group("/tags")
	{
		t.GET("", h.GetTags)
		t.POST("/cpt", h.AddFavoriteCPT)
		t.DELETE("/cpt/:code", h.RemoveFavoriteCPT)
	}
	r.GET("/flags", h.GetFlags)
}

func (h *Handler) GetTags(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.tags.Get(c.Request.Context())))
}

func (h *Handler) AddFavoriteCPT(c *gin.Context) {
	var req model.ListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.tags.AddFavoriteCPT(c.Request.Context(), req.Value)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) RemoveFavoriteCPT(c *gin.Context) {
	updated, err := h.tags.RemoveFavoriteCPT(c.Request.Context(), c.Param("code"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

// GetFlags returns the advisory red-flag vital thresholds. These are
// documentation for manual review, not computed alerts.
func (h *Handler) GetFlags(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.RedFlagThresholds()))
}
