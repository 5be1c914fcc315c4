package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/orgchart/pkg/buildinfo"
	"github.com/matzehuels/orgchart/pkg/cache"
	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// LayoutRequest is the body of POST /v1/layouts and POST /v1/render.
// Omitted config fields take the engine defaults.
type LayoutRequest struct {
	Units  []org.UnitRecord `json:"units"`
	Base   string           `json:"base,omitempty"`
	Depth  int              `json:"depth,omitempty"`
	Filter string           `json:"filter,omitempty"`
	Config layout.Config    `json:"config"`
	Style  string           `json:"style,omitempty"`
	Titles bool             `json:"titles,omitempty"`
}

// LayoutResponse is returned for created and fetched layouts.
type LayoutResponse struct {
	ID     string       `json:"id"`
	Cached bool         `json:"cached"`
	Layout graph.Layout `json:"layout"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
	Time   string         `json:"time"`
}

// storedLayout is what POST /v1/layouts persists.
type storedLayout struct {
	Style  string       `json:"style,omitempty"`
	Titles bool         `json:"titles,omitempty"`
	Layout graph.Layout `json:"layout"`
}

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Build:  buildinfo.Get(),
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, cached, err := s.computeLayout(r, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	id := uuid.NewString()
	data, err := json.Marshal(storedLayout{Style: req.Style, Titles: req.Titles, Layout: l})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store().Set(r.Context(), s.runner.Keyer.StoredKey(id), data, cache.TTLStored); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+id)
	writeJSON(w, http.StatusCreated, LayoutResponse{ID: id, Cached: cached, Layout: l})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id, stored, err := s.loadStored(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{ID: id, Cached: true, Layout: stored.Layout})
}

func (s *Server) handleRenderStored(w http.ResponseWriter, r *http.Request) {
	_, stored, err := s.loadStored(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := pipeline.Options{Style: stored.Style, Titles: stored.Titles}
	if err := applyRenderQuery(r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeArtifact(w, r, stored.Layout, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, _, err := s.computeLayout(r, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := pipeline.Options{Style: req.Style, Titles: req.Titles}
	if err := applyRenderQuery(r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeArtifact(w, r, l, opts)
}

// decodeRequest reads a LayoutRequest. Config starts from the engine
// defaults so a partial config only overrides what it names.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (LayoutRequest, error) {
	req := LayoutRequest{Config: layout.DefaultConfig()}
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, orgerrors.New(orgerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return req, orgerrors.New(orgerrors.ErrCodeInvalidInput, "request body is empty")
		}
		return req, orgerrors.Wrap(orgerrors.ErrCodeInvalidFormat, err, "invalid request body: %v", err)
	}
	if len(req.Units) == 0 {
		return req, orgerrors.New(orgerrors.ErrCodeInvalidInput, "units are required")
	}
	if req.Style != "" {
		if err := pipeline.ValidateStyle(req.Style); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (s *Server) computeLayout(r *http.Request, req LayoutRequest) (graph.Layout, bool, error) {
	g, err := org.FromDocument(org.Document{Units: req.Units})
	if err != nil {
		return graph.Layout{}, false, err
	}
	return s.runner.ComputeLayoutWithCacheInfo(r.Context(), g, pipeline.Options{
		Base:   req.Base,
		Depth:  req.Depth,
		Filter: req.Filter,
		Layout: req.Config,
	})
}

func (s *Server) loadStored(r *http.Request) (string, storedLayout, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return id, storedLayout{}, orgerrors.New(orgerrors.ErrCodeInvalidInput, "invalid layout id %q", id)
	}

	data, ok, err := s.store().Get(r.Context(), s.runner.Keyer.StoredKey(id))
	if err != nil {
		return id, storedLayout{}, err
	}
	if !ok {
		return id, storedLayout{}, orgerrors.New(orgerrors.ErrCodeNotFound, "layout %s not found", id)
	}

	var stored storedLayout
	if err := json.Unmarshal(data, &stored); err != nil {
		return id, storedLayout{}, orgerrors.Wrap(orgerrors.ErrCodeInternal, err, "decode stored layout %s", id)
	}
	return id, stored, nil
}

// applyRenderQuery reads format, style, renderer, titles and scale query
// parameters over opts.
func applyRenderQuery(r *http.Request, opts *pipeline.Options) error {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("renderer"); v != "" {
		opts.Renderer = v
	}
	if v := q.Get("titles"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return orgerrors.New(orgerrors.ErrCodeInvalidInput, "invalid titles %q", v)
		}
		opts.Titles = b
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return orgerrors.New(orgerrors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = f
	}
	return nil
}

func (s *Server) writeArtifact(w http.ResponseWriter, r *http.Request, l graph.Layout, opts pipeline.Options) {
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
