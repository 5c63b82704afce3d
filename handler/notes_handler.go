package handler

import (
	"strconv"

	"notesapi/dto"
	"notesapi/logging"
	"notesapi/middleware"
	"notesapi/usecase"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

// NotesHandler serves /notes. Every call is scoped to the authenticated
// caller; no owner field is read from the request.
type NotesHandler struct {
	notes *usecase.NotesService
	errorResponder
}

func NewNotesHandler(notes *usecase.NotesService, log logging.Logger, exposeDetails bool) *NotesHandler {
	return &NotesHandler{
		notes:          notes,
		errorResponder: errorResponder{log: log, exposeDetails: exposeDetails},
	}
}

func (h *NotesHandler) caller(c *gin.Context) (string, bool) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		utils.Unauthorized(c, "Access token required")
	}
	return userID, ok
}

func toNoteInput(req dto.NoteRequest) usecase.NoteInput {
	return usecase.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
	}
}

func (h *NotesHandler) Create(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.NoteRequest
	if !h.bind(c, &req) {
		return
	}

	note, err := h.notes.Create(c.Request.Context(), userID, toNoteInput(req))
	if err != nil {
		h.respond(c, err)
		return
	}

	utils.Created(c, dto.NoteEnvelope{
		Message: "Note created successfully",
		Note:    dto.ToNoteResponse(note),
	})
}

// List handles GET /notes?page=&limit=&search=&priority=. Unparseable page
// or limit values fall back to the defaults.
func (h *NotesHandler) List(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.notes.List(c.Request.Context(), userID, usecase.ListQuery{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Priority: c.Query("priority"),
	})
	if err != nil {
		h.respond(c, err)
		return
	}

	utils.Success(c, dto.NotesPageResponse{
		Message: "Notes retrieved successfully",
		Notes:   dto.ToNoteResponses(result.Notes),
		Pagination: dto.Pagination{
			CurrentPage: result.Page,
			Limit:       result.Limit,
			TotalPages:  result.TotalPages,
			TotalNotes:  result.Total,
			HasNextPage: result.HasNext,
			HasPrevPage: result.HasPrev,
		},
	})
}

func (h *NotesHandler) Get(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	note, err := h.notes.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respond(c, err)
		return
	}

	utils.Success(c, dto.NoteEnvelope{
		Message: "Note retrieved successfully",
		Note:    dto.ToNoteResponse(note),
	})
}

func (h *NotesHandler) Update(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.NoteRequest
	if !h.bind(c, &req) {
		return
	}

	note, err := h.notes.Update(c.Request.Context(), userID, c.Param("id"), toNoteInput(req))
	if err != nil {
		h.respond(c, err)
		return
	}

	utils.Success(c, dto.NoteEnvelope{
		Message: "Note updated successfully",
		Note:    dto.ToNoteResponse(note),
	})
}

func (h *NotesHandler) Delete(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respond(c, err)
		return
	}

	utils.Success(c, dto.MessageResponse{Message: "Note deleted successfully"})
}

// RenderHTML handles GET /notes/:id/html.
func (h *NotesHandler) RenderHTML(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	note, html, err := h.notes.Render(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respond(c, err)
		return
	}

	utils.Success(c, dto.RenderedNoteResponse{
		Message: "Note rendered successfully",
		ID:      note.ID,
		Title:   note.Title,
		HTML:    string(html),
	})
}
