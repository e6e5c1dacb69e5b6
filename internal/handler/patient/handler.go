package patient

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chartpro/emr-api/internal/handler"
	"github.com/chartpro/emr-api/internal/model"
	"github.com/chartpro/emr-api/internal/service/roster"
)

type Handler struct {
	service roster.RosterService
}

func NewHandler(service roster.RosterService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.AddPatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PATCH("/:id", h.UpdatePatient)

		patients.POST("/:id/vitals", h.AddVital)

		patients.POST("/:id/problems", h.addListItem(roster.FieldProblems))
		patients.DELETE("/:id/problems/:index", h.removeListItem(roster.FieldProblems))
		patients.POST("/:id/allergies", h.addListItem(roster.FieldAllergies))
		patients.DELETE("/:id/allergies/:index", h.removeListItem(roster.FieldAllergies))
		patients.POST("/:id/meds", h.addListItem(roster.FieldMeds))
		patients.DELETE("/:id/meds/:index", h.removeListItem(roster.FieldMeds))

		patients.POST("/:id/icd10", h.AddICD10)
		patients.DELETE("/:id/icd10/:code", h.RemoveICD10)
	}
}

// AddPatient creates a patient with placeholder demographics. It has no
// request body and no failure modes beyond persistence.
func (h *Handler) AddPatient(c *gin.Context) {
	p, err := h.service.AddPatient(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context(), c.Query("q"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) GetPatient(c *gin.Context) {
	p, err := h.service.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

// UpdatePatient merges a partial update. An unknown id is a no-op and
// still returns success, matching the roster contract.
func (h *Handler) UpdatePatient(c *gin.Context) {
	var patch model.PatientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.UpdatePatient(c.Request.Context(), c.Param("id"), &patch); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "patient updated"})
}

func (h *Handler) AddVital(c *gin.Context) {
	var req model.AddVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.AddVital(c.Request.Context(), c.Param("id"), req.Entry()); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &handler.Response{Status: "success", Message: "vital recorded"})
}

func (h *Handler) addListItem(field roster.ListField) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.ListItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}

		if err := h.service.AddListItem(c.Request.Context(), c.Param("id"), field, req.Value); err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "list updated"})
	}
}

func (h *Handler) removeListItem(field roster.ListField) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid index"))
			return
		}

		if err := h.service.RemoveListItem(c.Request.Context(), c.Param("id"), field, index); err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "list updated"})
	}
}

func (h *Handler) AddICD10(c *gin.Context) {
	var req model.ListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.AddICD10(c.Request.Context(), c.Param("id"), req.Value); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "diagnosis codes updated"})
}

func (h *Handler) RemoveICD10(c *gin.Context) {
	if err := h.service.RemoveICD10(c.Request.Context(), c.Param("id"), c.Param("code")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "diagnosis codes updated"})
}
