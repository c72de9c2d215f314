package httpapp

import (
	"net/http"

	"github.com/cesargomez89/mekkompis/internal/http/dto"
)

func (h *Handler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.Features.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Kunde inte hämta funktioner")
		return
	}
	writeJSON(w, http.StatusOK, features)
}

func (h *Handler) GetFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "feature")
	if !ok {
		return
	}
	f, err := h.Features.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte hämta funktion")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) CreateFeature(w http.ResponseWriter, r *http.Request) {
	var req dto.FeatureRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte skapa funktion")
		return
	}
	f, err := h.Features.Create(r.Context(), req.ToDomain())
	if err != nil {
		h.writeError(w, r, err, "Kunde inte skapa funktion")
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *Handler) UpdateFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "feature")
	if !ok {
		return
	}
	var req dto.FeatureRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera funktion")
		return
	}
	f, err := h.Features.Update(r.Context(), id, req.Title, req.Description)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera funktion")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) UpdateFeatureStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "feature")
	if !ok {
		return
	}
	var req dto.FeatureStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera status")
		return
	}
	f, err := h.Features.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera status")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) DeleteFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "feature")
	if !ok {
		return
	}
	if err := h.Features.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Kunde inte ta bort funktion")
		return
	}
	writeMessage(w, http.StatusOK, "Funktionen har tagits bort")
}
