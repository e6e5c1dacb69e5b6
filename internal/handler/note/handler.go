package note

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chartpro/emr-api/internal/handler"
	"github.com/chartpro/emr-api/internal/render"
	"github.com/chartpro/emr-api/internal/service/composer"
	"github.com/chartpro/emr-api/internal/service/roster"
)

type Handler struct {
	rosterSvc roster.RosterService
	composer  *composer.Service
}

func NewHandler(rosterSvc roster.RosterService, composerSvc *composer.Service) *Handler {
	return &Handler{rosterSvc: rosterSvc, composer: composerSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients/:id")
	{
		patients.POST("/drafts", h.StartDraft)
		patients.DELETE("/drafts", h.ResetDraft)
		patients.GET("/notes", h.ListNotes)
		patients.GET("/notes/:noteId/document", h.NoteDocument)
	}

	drafts := r.Group("/drafts/:draftId")
	{
		drafts.GET("", h.GetDraft)
		drafts.PATCH("", h.UpdateDraft)
		drafts.POST("/goniometry", h.AddGoniometryRow)
		drafts.POST("/mmt", h.AddMMTRow)
		drafts.POST("/save", h.SaveDraft)
	}
}

func (h *Handler) StartDraft(c *gin.Context) {
	view, err := h.composer.StartDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(view))
}

// ResetDraft discards the patient's open draft. The client calls this when
// the active patient changes.
func (h *Handler) ResetDraft(c *gin.Context) {
	h.composer.ResetDraft(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "draft discarded"})
}

func (h *Handler) GetDraft(c *gin.Context) {
	view, err := h.composer.GetDraft(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) UpdateDraft(c *gin.Context) {
	var patch composer.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	view, err := h.composer.UpdateDraft(c.Request.Context(), c.Param("draftId"), &patch)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) AddGoniometryRow(c *gin.Context) {
	var row composer.GoniometryRowInput
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	view, err := h.composer.AddGoniometryRow(c.Request.Context(), c.Param("draftId"), row)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) AddMMTRow(c *gin.Context) {
	var row composer.MMTRowInput
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	view, err := h.composer.AddMMTRow(c.Request.Context(), c.Param("draftId"), row)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

// SaveDraft commits the draft as a finished note. The response carries
// view "notes": saving implies the client navigates to the note list.
func (h *Handler) SaveDraft(c *gin.Context) {
	note, err := h.composer.Save(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"note": note,
		"view": "notes",
	}))
}

func (h *Handler) ListNotes(c *gin.Context) {
	notes, err := h.rosterSvc.ListNotes(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(notes))
}

// NoteDocument returns the printable HTML rendition of a saved note.
func (h *Handler) NoteDocument(c *gin.Context) {
	ctx := c.Request.Context()
	patientID := c.Param("id")

	patient, err := h.rosterSvc.GetPatient(ctx, patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	note, err := h.rosterSvc.GetNote(ctx, patientID, c.Param("noteId"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	doc, err := render.NoteDocument(patient, note)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}
