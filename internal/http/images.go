package httpapp

import (
	"net/http"
)

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.idOr404(w, r, "job")
	if !ok {
		return
	}

	_, upload, cleanup, err := readMultipart(w, r)
	defer cleanup()
	if err != nil {
		h.writeError(w, r, err, "Kunde inte ladda upp bild")
		return
	}
	if upload == nil {
		writeErrorMessage(w, http.StatusBadRequest, "Ingen bild uppladdad")
		return
	}

	img, err := h.Images.Upload(r.Context(), jobID, *upload)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte ladda upp bild")
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "image")
	if !ok {
		return
	}
	if err := h.Images.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Kunde inte ta bort bild")
		return
	}
	writeMessage(w, http.StatusOK, "Bilden har tagits bort")
}
