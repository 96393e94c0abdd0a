package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-blog/internal/validators"
)

func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedForm, err)
	}
	return nil
}

func formValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.PostFormValue(field))
}

func formBool(r *http.Request, field string) bool {
	switch strings.ToLower(r.PostFormValue(field)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

// pageFromQuery reads ?page=N; anything unparsable means the first page.
func pageFromQuery(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// fieldError builds a single-field validation failure.
func fieldError(field, message string) validators.FormErrors {
	errs := validators.FormErrors{}
	errs.Add(field, message)
	return errs
}

// renderFormErrors re-renders a form page with the messages carried by err.
// Errors that are not validation failures go to the error page instead.
func (h *Handler) renderFormErrors(w http.ResponseWriter, r *http.Request, err error, name string, page pageData) {
	var errs validators.FormErrors
	if !errors.As(err, &errs) {
		h.handleError(w, r, err)
		return
	}

	page.Errors = errs
	h.render(w, r, http.StatusOK, name, page)
}
