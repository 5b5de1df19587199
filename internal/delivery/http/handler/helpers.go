package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"doctor-directory/internal/infrastructure/storage"
	"doctor-directory/pkg/response"
	"doctor-directory/pkg/validator"

	"github.com/gorilla/mux"
)

// multipartMemory is how much of a multipart form is kept in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

var errMissingFile = errors.New("missing file")

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// queryTime parses an RFC 3339 timestamp or a bare 2006-01-02 date. With
// dayEnd set a bare date resolves to the following midnight, so an exclusive
// upper bound still covers the whole day.
func queryTime(r *http.Request, name string, dayEnd bool) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	if dayEnd {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}

// writeValidationError answers 400 when err carries field violations and
// reports whether it did.
func writeValidationError(w http.ResponseWriter, v *validator.CustomValidator, err error) bool {
	var res validator.Result
	if errors.As(err, &res) {
		response.ValidationError(w, v.FormatValidationErrors(res))
		return true
	}
	return false
}

// writeUploadError maps storage rejections to client errors and reports
// whether err was one of them.
func writeUploadError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, storage.ErrUnsupportedMedia):
		response.Error(w, http.StatusUnsupportedMediaType, "Only JPEG, PNG, WebP or GIF images are accepted", nil)
	case errors.Is(err, storage.ErrFileTooLarge):
		response.Error(w, http.StatusRequestEntityTooLarge, "File too large", nil)
	case errors.Is(err, storage.ErrEmptyFile), errors.Is(err, errMissingFile):
		response.BadRequest(w, "An image file is required")
	default:
		return false
	}
	return true
}

// formFile opens the uploaded file in field. The caller closes it.
func formFile(r *http.Request, field string) (io.ReadCloser, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, errMissingFile
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, errMissingFile
	}
	return file, nil
}
