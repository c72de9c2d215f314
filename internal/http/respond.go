package httpapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/mekkompis/internal/app"
	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/http/dto"
	"github.com/cesargomez89/mekkompis/internal/storage"
)

const (
	msgBadRequest = "Ogiltig begäran"
	msgNotImage   = "Endast bildfiler är tillåtna!"
	msgTooLarge   = "Filen är för stor (max 10 MB)"
	msgOneFile    = "Endast en bild per förfrågan"
	msgNotFound   = "Resursen hittades inte"
	msgInternal   = "Något gick fel på servern"
)

var notFoundMessages = map[string]string{
	"motorcycle":    "Motorcykeln hittades inte",
	"job":           "Jobbet hittades inte",
	"image":         "Bilden hittades inte",
	"note":          "Anteckningen hittades inte",
	"shopping item": "Artikeln hittades inte",
	"feature":       "Funktionen hittades inte",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.MessageResponse{Message: message})
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

func notFoundMessage(resource string) string {
	if msg, ok := notFoundMessages[resource]; ok {
		return msg
	}
	return msgNotFound
}

// writeError maps service errors onto status codes. Anything unexpected is
// logged and answered with the generic fallback text.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *app.ValidationError
	var nf domain.NotFoundError
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: verr.Error(), Fields: verr.ToMap()})
	case errors.As(err, &nf):
		writeErrorMessage(w, http.StatusNotFound, notFoundMessage(nf.Resource))
	case errors.Is(err, storage.ErrNotImage):
		writeErrorMessage(w, http.StatusBadRequest, msgNotImage)
	case errors.Is(err, storage.ErrTooLarge), errors.As(err, &maxBytes):
		writeErrorMessage(w, http.StatusRequestEntityTooLarge, msgTooLarge)
	default:
		h.Logger.WithRequest(r.Method, r.URL.Path, requestID(r)).Error(fallback, "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, fallback)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return invalidInput(err)
	}
	return nil
}

func invalidInput(err error) error {
	return app.Invalid(fmt.Sprintf("%s: %v", msgBadRequest, err))
}

// parseID reads a numeric URL parameter. Ids that are not positive
// integers can never resolve, so callers answer 404.
func parseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) idOr404(w http.ResponseWriter, r *http.Request, resource string) (int64, bool) {
	id, ok := parseID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, notFoundMessage(resource))
	}
	return id, ok
}
