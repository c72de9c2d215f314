package httpapp

import (
	"net/http"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/http/dto"
	"github.com/cesargomez89/mekkompis/internal/storage"
)

func (h *Handler) ListMotorcycles(w http.ResponseWriter, r *http.Request) {
	motorcycles, err := h.Motorcycles.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Kunde inte hämta motorcyklar")
		return
	}
	writeJSON(w, http.StatusOK, motorcycles)
}

func (h *Handler) GetMotorcycle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "motorcycle")
	if !ok {
		return
	}
	detail, err := h.Motorcycles.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte hämta motorcykel")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// readMotorcycle accepts either a JSON body or a multipart form with an
// optional image.
func (h *Handler) readMotorcycle(w http.ResponseWriter, r *http.Request) (*domain.Motorcycle, *storage.Upload, func(), error) {
	if !isMultipart(r) {
		var req dto.MotorcycleRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, nil, func() {}, err
		}
		return req.ToDomain(), nil, func() {}, nil
	}

	values, upload, cleanup, err := readMultipart(w, r)
	if err != nil {
		return nil, nil, cleanup, err
	}
	req, err := dto.MotorcycleFromForm(values)
	if err != nil {
		cleanup()
		return nil, nil, func() {}, invalidInput(err)
	}
	return req.ToDomain(), upload, cleanup, nil
}

func (h *Handler) CreateMotorcycle(w http.ResponseWriter, r *http.Request) {
	m, upload, cleanup, err := h.readMotorcycle(w, r)
	defer cleanup()
	if err != nil {
		h.writeError(w, r, err, "Kunde inte skapa motorcykel")
		return
	}

	created, err := h.Motorcycles.Create(r.Context(), m, upload)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte skapa motorcykel")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateMotorcycle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "motorcycle")
	if !ok {
		return
	}
	m, upload, cleanup, err := h.readMotorcycle(w, r)
	defer cleanup()
	if err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera motorcykel")
		return
	}

	updated, err := h.Motorcycles.Update(r.Context(), id, m, upload)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera motorcykel")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteMotorcycle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "motorcycle")
	if !ok {
		return
	}
	if err := h.Motorcycles.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Kunde inte ta bort motorcykel")
		return
	}
	writeMessage(w, http.StatusOK, "Motorcykeln har tagits bort")
}
