package httpapp

import (
	"net/http"

	"github.com/cesargomez89/mekkompis/internal/http/dto"
)

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.idOr404(w, r, "job")
	if !ok {
		return
	}
	var req dto.NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte skapa anteckning")
		return
	}
	notes, err := h.Notes.Create(r.Context(), jobID, req.Content)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte skapa anteckning")
		return
	}
	writeJSON(w, http.StatusCreated, notes)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "note")
	if !ok {
		return
	}
	var req dto.NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera anteckning")
		return
	}
	if err := h.Notes.Update(r.Context(), id, req.Content); err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera anteckning")
		return
	}
	writeMessage(w, http.StatusOK, "Anteckningen har uppdaterats")
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "note")
	if !ok {
		return
	}
	if err := h.Notes.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Kunde inte ta bort anteckning")
		return
	}
	writeMessage(w, http.StatusOK, "Anteckningen har tagits bort")
}
