package handler

import (
	"net/http"

	"tradebooks/internal/service"
	"tradebooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService service.JobNoteService
}

func NewNoteHandler(noteService service.JobNoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	notes := router.Group("/api/job-notes")
	{
		notes.GET("", h.ListJobNotes)
		notes.POST("", h.SaveJobNote)
		notes.PUT("/:id", h.SaveJobNote)
		notes.DELETE("/:id", h.DeleteJobNote)
	}
}

// ListJobNotes returns every job note for the account
// @Summary      List job notes
// @Tags         notes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.JobNoteResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/job-notes [get]
func (h *NoteHandler) ListJobNotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notes, err := h.noteService.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, notes))
}

// SaveJobNote creates or updates a job note
// @Summary      Save job note
// @Tags         notes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SaveJobNoteRequest  true  "Job Note Payload"
// @Success      200      {object}  response.Response{data=service.JobNoteResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/job-notes [post]
func (h *NoteHandler) SaveJobNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.SaveJobNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}

	note, err := h.noteService.Save(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, note))
}

// DeleteJobNote removes a job note
// @Summary      Delete job note
// @Tags         notes
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Job Note ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/job-notes/{id} [delete]
func (h *NoteHandler) DeleteJobNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "job note deleted"}))
}
