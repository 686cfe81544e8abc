package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flexgrid/pkg/album"
	"github.com/matzehuels/flexgrid/pkg/buildinfo"
	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/layout"
	"github.com/matzehuels/flexgrid/pkg/observability"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
	"github.com/matzehuels/flexgrid/pkg/render"
)

// LayoutRequest is the body of POST /v1/layouts and POST /v1/render/{format}.
// Album uses the same JSON shape as an album.json manifest.
type LayoutRequest struct {
	Album json.RawMessage `json:"album"`
	pipeline.Options
}

// LayoutResponse is the body returned by POST /v1/layouts.
type LayoutResponse struct {
	RequestID  string            `json:"request_id"`
	LayoutHash string            `json:"layout_hash"`
	Layout     layout.Document   `json:"layout"`
	Artifacts  map[string]string `json:"artifacts,omitempty"`
	Stats      Stats             `json:"stats"`
	Cached     Cached            `json:"cached"`
}

// Stats summarizes a pipeline run.
type Stats struct {
	Items      int     `json:"items"`
	Columns    int     `json:"columns"`
	Height     float64 `json:"height"`
	DurationMS int64   `json:"duration_ms"`
}

// Cached reports which stages were served from the cache.
type Cached struct {
	Layout bool `json:"layout"`
	Render bool `json:"render"`
}

// Health is the body returned by GET /healthz.
type Health struct {
	Status string         `json:"status"`
	Cache  string         `json:"cache,omitempty"`
	Build  buildinfo.Info `json:"build"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := Health{Status: "ok", Build: buildinfo.Get()}
	if p, ok := s.runner.Cache.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			resp.Status, resp.Cache = "degraded", err.Error()
			s.writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := LayoutResponse{
		RequestID:  RequestID(r.Context()),
		LayoutHash: res.LayoutHash,
		Layout:     res.Layout,
		Stats: Stats{
			Items:      res.Stats.Items,
			Columns:    res.Stats.Columns,
			Height:     res.Stats.Height,
			DurationMS: (res.Stats.LoadTime + res.Stats.LayoutTime + res.Stats.RenderTime).Milliseconds(),
		},
		Cached: Cached{Layout: res.CacheInfo.LayoutHit, Render: res.CacheInfo.RenderHit},
	}
	for format, data := range res.Artifacts {
		// The layout field already carries the JSON document
		if format == string(render.FormatJSON) {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	formats, err := render.ParseFormats([]string{chi.URLParam(r, "format")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(formats) != 1 {
		s.writeError(w, r, ferrors.New(ferrors.ErrCodeInvalidFormat, "exactly one format is required"))
		return
	}
	format := formats[0]

	opts, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{string(format)}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("ETag", `"`+res.LayoutHash+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifacts[string(format)]); err != nil {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return pipeline.Options{}, ferrors.New(ferrors.ErrCodeInvalidInput, "content type must be application/json, got %q", ct)
	}

	var req LayoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return pipeline.Options{}, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "decode request")
	}
	if len(bytes.TrimSpace(req.Album)) == 0 || bytes.Equal(bytes.TrimSpace(req.Album), []byte("null")) {
		return pipeline.Options{}, ferrors.New(ferrors.ErrCodeInvalidInput, "album is required")
	}

	a, err := album.ReadJSON(bytes.NewReader(req.Album))
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := req.Options
	opts.Album = a
	opts.AlbumPath = ""
	return opts, nil
}
