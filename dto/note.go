package dto

import (
	"time"

	"notesapi/model"
)

type NoteRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Priority *string `json:"priority"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Priority  string    `json:"priority,omitempty"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NoteEnvelope struct {
	Message string       `json:"message"`
	Note    NoteResponse `json:"note"`
}

type RenderedNoteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	HTML    string `json:"html"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	TotalNotes  int  `json:"totalNotes"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type NotesPageResponse struct {
	Message    string         `json:"message"`
	Notes      []NoteResponse `json:"notes"`
	Pagination Pagination     `json:"pagination"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Priority:  note.Priority,
		UserID:    note.UserID,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
