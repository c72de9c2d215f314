package httpapp

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/cesargomez89/mekkompis/internal/app"
	"github.com/cesargomez89/mekkompis/internal/constants"
	"github.com/cesargomez89/mekkompis/internal/storage"
)

// multipartOverhead leaves room for form fields and part headers on top
// of the file itself.
const multipartOverhead = 1 << 20

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// readMultipart parses a multipart body and returns its form values and the
// optional file in the image field. A body carrying more than one file, or
// a file under any other field, is rejected. The returned cleanup must be
// called once the upload has been consumed.
func readMultipart(w http.ResponseWriter, r *http.Request) (url.Values, *storage.Upload, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		if tooLarge(err) {
			return nil, nil, func() {}, storage.ErrTooLarge
		}
		return nil, nil, func() {}, app.Invalid(msgBadRequest)
	}

	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}
	values := url.Values(r.MultipartForm.Value)

	files := 0
	for field, headers := range r.MultipartForm.File {
		if field != constants.UploadField {
			return values, nil, cleanup, app.Invalid(msgOneFile)
		}
		files += len(headers)
	}
	if files > 1 {
		return values, nil, cleanup, app.Invalid(msgOneFile)
	}

	file, header, err := r.FormFile(constants.UploadField)
	if errors.Is(err, http.ErrMissingFile) {
		return values, nil, cleanup, nil
	}
	if err != nil {
		return values, nil, cleanup, app.Invalid(msgBadRequest)
	}

	upload := &storage.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return values, upload, func() {
		_ = file.Close()
		cleanup()
	}, nil
}

func tooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
