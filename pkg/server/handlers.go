package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-pystarter/internal/openapi"
	"github.com/goliatone/go-pystarter/pkg/naming"
	"github.com/goliatone/go-pystarter/pkg/orchestrator"
	"github.com/goliatone/go-pystarter/pkg/project"
	"github.com/goliatone/go-pystarter/pkg/render"
)

type errorResponse struct {
	Errors []string `json:"errors"`
}

type advisoryResponse struct {
	Name     string   `json:"name"`
	Messages []string `json:"messages"`
}

type normalizeResponse struct {
	Names    naming.Names     `json:"names"`
	Advisory advisoryResponse `json:"advisory"`
}

type renderResponse struct {
	Fields   project.Fields   `json:"fields"`
	Names    naming.Names     `json:"names"`
	Advisory advisoryResponse `json:"advisory"`
	Snippets []render.Panel   `json:"snippets"`
}

// handlePage renders the form. Query parameters named after fields supply
// values; fields missing from the query take the layout defaults, while a
// submitted empty value stays empty.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := orchestrator.Request{
		Fields:       fieldsFromQuery(query, s.orch.Defaults()),
		Renderer:     s.renderer,
		Tab:          query.Get("tab"),
		ThemeName:    firstNonEmpty(query.Get("theme"), s.themeName),
		ThemeVariant: firstNonEmpty(query.Get("variant"), s.themeVariant),
		Action:       "/",
	}

	renderer, err := s.orch.Renderer(req.Renderer)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	output, err := s.orch.Generate(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrThemeNotFound) {
			status = http.StatusBadRequest
		}
		s.fail(w, r, status, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	if _, err := w.Write(output); err != nil {
		s.logger.WithError(err).Warn("write response")
	}
}

// handleRender validates the JSON body and returns every snippet. Keys left
// out of the body take the defaults; explicit empty strings are kept.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Errors: []string{"request body too large"}})
			return
		}
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	if err := s.validator.ValidateBody(r.Method, "/api/render", body); err != nil {
		var verr *openapi.ValidationError
		if errors.As(err, &verr) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Errors: verr.Messages})
			return
		}
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	fields := s.orch.Defaults()
	if err := json.Unmarshal(body, &fields); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{err.Error()}})
		return
	}

	view, err := s.orch.Compose(r.Context(), fields)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, renderResponse{
		Fields:   view.Fields,
		Names:    view.Names(),
		Advisory: advisoryOf(view.Advisory),
		Snippets: view.Panels(),
	})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("name") {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{"query parameter \"name\" is required"}})
		return
	}

	s.writeJSON(w, http.StatusOK, normalizeResponse{
		Names:    naming.Normalize(query.Get("name")),
		Advisory: advisoryOf(naming.Advise(query.Get(project.FieldTestName))),
	})
}

func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(openapi.Document()); err != nil {
		s.logger.WithError(err).Warn("write response")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Warn("write json response")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.WithError(err).WithField("path", r.URL.Path).Warn("request failed")
	s.writeJSON(w, status, errorResponse{Errors: []string{err.Error()}})
}

// fieldsFromQuery overlays the submitted fields onto base.
func fieldsFromQuery(query url.Values, base project.Fields) project.Fields {
	fields := base
	for _, key := range project.FieldKeys() {
		if query.Has(key) {
			fields.Set(key, query.Get(key))
		}
	}
	return fields
}

func advisoryOf(a naming.Advisory) advisoryResponse {
	messages := a.Messages()
	if messages == nil {
		messages = []string{}
	}
	return advisoryResponse{Name: a.Name, Messages: messages}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
