package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

const layoutTemplate = "layout.html"

//go:embed templates/*.html
var templateFS embed.FS

// templates maps a page file name to the layout cloned with that page.
type templates map[string]*template.Template

// pageData is the single view model every page is rendered with. Pages read
// only the fields they need.
type pageData struct {
	Title     string
	Principal *models.Principal
	Flashes   []models.Flash

	Form   any
	Errors validators.FormErrors
	Legend string

	Posts   models.PostsPage
	PageURL string

	Post     models.Post
	Author   models.User
	ImageURL string

	Status  int
	Heading string
	Message string
}

func mustParseTemplates(funcs template.FuncMap) templates {
	t, err := parseTemplates(funcs)
	if err != nil {
		panic(err)
	}
	return t
}

func parseTemplates(funcs template.FuncMap) (templates, error) {
	layout, err := template.New(layoutTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("error parsing layout: %w", err)
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	set := make(templates, len(pages))
	for _, page := range pages {
		name := path.Base(page)
		if name == layoutTemplate {
			continue
		}

		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err = t.ParseFS(templateFS, page); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", name, err)
		}
		set[name] = t
	}

	return set, nil
}

func (h *Handler) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"picture": func(name string) string {
			return h.services.PictureService.PictureURL(name)
		},
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"canModify": service.CanModify,
	}
}

// render executes the named page into a buffer so that a template failure
// still produces a clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	log := logger.FromRequest(r)

	t, ok := h.templates[name]
	if !ok {
		log.Error().Err(ErrTemplateNotFound).Str("template", name).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data.Principal, _ = utils.GetPrincipalFromContext(r.Context())
	data.Flashes = h.takeFlashes(w, r)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		log.Err(err).Str("template", name).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug().Err(err).Msg("error writing page")
	}
}

var errorPages = map[int][2]string{
	http.StatusBadRequest:            {"Bad Request (400)", "The request could not be understood. Please go back and try again."},
	http.StatusUnauthorized:          {"Not Logged In (401)", "Please log in and try again."},
	http.StatusForbidden:             {"You don't have permission to do that (403)", "Please check your account and try again."},
	http.StatusNotFound:              {"Oops. Page Not Found (404)", "That page does not exist. Please try a different location."},
	http.StatusMethodNotAllowed:      {"Method Not Allowed (405)", "That page cannot be used this way."},
	http.StatusConflict:              {"Conflict (409)", "Someone else changed this resource. Please reload and try again."},
	http.StatusRequestEntityTooLarge: {"Upload Too Large (413)", "The uploaded file is too large."},
	http.StatusInternalServerError:   {"Something went wrong (500)", "We're experiencing some trouble on our end. Please try again in the near future."},
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int) {
	page, ok := errorPages[status]
	if !ok {
		page = [2]string{http.StatusText(status), ""}
	}
	h.render(w, r, status, "error.html", pageData{
		Title:   http.StatusText(status),
		Status:  status,
		Heading: page[0],
		Message: page[1],
	})
}

// handleError renders the error page matching err and logs anything that
// maps to a server failure.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	h.renderError(w, r, status)
}
