package httpapp

import (
	"net/http"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/http/dto"
)

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Jobs.ListJobs(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Kunde inte hämta jobb")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "job")
	if !ok {
		return
	}
	detail, err := h.Jobs.GetJob(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte hämta jobb")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req dto.JobRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte skapa jobb")
		return
	}
	job, err := h.Jobs.CreateJob(r.Context(), req.ToDomain())
	if err != nil {
		h.writeError(w, r, err, "Kunde inte skapa jobb")
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "job")
	if !ok {
		return
	}
	var req dto.JobRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera jobb")
		return
	}
	job, err := h.Jobs.UpdateJob(r.Context(), id, req.ToDomain())
	if err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera jobb")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "job")
	if !ok {
		return
	}
	if err := h.Jobs.DeleteJob(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Kunde inte ta bort jobb")
		return
	}
	writeMessage(w, http.StatusOK, "Jobbet har tagits bort")
}

func (h *Handler) ToggleJobCompleted(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "job")
	if !ok {
		return
	}
	completed, err := h.Jobs.ToggleCompleted(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera status")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message   string      `json:"message"`
		Completed domain.Flag `json:"completed"`
	}{"Status uppdaterad", completed})
}
