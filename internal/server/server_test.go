package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/flexgrid/pkg/cache"
	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
)

const testAlbum = `{
	"title": "holiday",
	"grid": {"min_column_width": 100},
	"items": [
		{"id": "a", "width": 100, "height": 100},
		{"id": "b", "width": 100, "height": 100},
		{"id": "c", "width": 100, "height": 100},
		{"id": "pano", "width": 400, "height": 100, "caption": "beach"}
	]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	s := New(Config{Runner: pipeline.NewRunner(c, nil, nil)})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func layoutBody(extra string) string {
	body := `{"album": ` + testAlbum + `, "width": 320`
	if extra != "" {
		body += ", " + extra
	}
	return body + "}"
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body Health
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("health = %+v", body)
	}
}

func TestHealthCacheDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	runner := pipeline.NewRunner(cache.NewRedisCacheFromClient(client), nil, nil)
	defer runner.Close()

	rec := httptest.NewRecorder()
	New(Config{Runner: runner}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestCreateLayout(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/v1/layouts", layoutBody(`"formats": ["json", "svg"]`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("X-Request-ID = %q, want a uuid", resp.Header.Get(RequestIDHeader))
	}

	var body LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.RequestID != resp.Header.Get(RequestIDHeader) {
		t.Errorf("RequestID = %q, want header value", body.RequestID)
	}
	if body.Layout.Columns != 3 || len(body.Layout.Blocks) != 4 {
		t.Errorf("layout has %d columns and %d blocks, want 3 and 4", body.Layout.Columns, len(body.Layout.Blocks))
	}
	if pano, ok := body.Layout.Block("pano"); !ok || pano.Span != 3 || pano.Caption != "beach" {
		t.Errorf("pano = %+v", pano)
	}
	if _, ok := body.Artifacts["json"]; ok {
		t.Error("json artifact should not be duplicated")
	}
	if !strings.HasPrefix(body.Artifacts["svg"], "<svg") {
		t.Errorf("svg artifact = %.40q", body.Artifacts["svg"])
	}
	if body.Stats.Items != 4 || body.Cached.Layout {
		t.Errorf("Stats = %+v, Cached = %+v", body.Stats, body.Cached)
	}

	again := post(t, ts, "/v1/layouts", layoutBody(`"formats": ["json", "svg"]`))
	var second LayoutResponse
	if err := json.NewDecoder(again.Body).Decode(&second); err != nil {
		t.Fatal(err)
	}
	if !second.Cached.Layout || !second.Cached.Render {
		t.Errorf("second Cached = %+v, want hits", second.Cached)
	}
	if second.LayoutHash != body.LayoutHash {
		t.Error("cached layout hash differs")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("malformed request id should be replaced")
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/v1/render/svg", layoutBody(`"labels": true`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ">pano</text>") {
		t.Error("svg missing labels")
	}

	txt := post(t, ts, "/v1/render/text", layoutBody(""))
	if ct := txt.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("text Content-Type = %q", ct)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   ferrors.Code
	}{
		{"malformed json", "/v1/layouts", `{"album":`, http.StatusBadRequest, ferrors.ErrCodeInvalidInput},
		{"missing album", "/v1/layouts", `{"width": 300}`, http.StatusBadRequest, ferrors.ErrCodeInvalidInput},
		{"unknown field", "/v1/layouts", layoutBody(`"colour": "red"`), http.StatusBadRequest, ferrors.ErrCodeInvalidInput},
		{"bad format", "/v1/layouts", layoutBody(`"formats": ["png"]`), http.StatusBadRequest, ferrors.ErrCodeInvalidFormat},
		{"bad item", "/v1/layouts", `{"album": {"items": [{"id": "x", "width": 0, "height": 1}]}}`, http.StatusBadRequest, ferrors.ErrCodeInvalidItem},
		{"duplicate ids", "/v1/layouts", `{"album": {"items": [{"id": "x", "width": 1, "height": 1}, {"id": "x", "width": 1, "height": 1}]}}`, http.StatusBadRequest, ferrors.ErrCodeInvalidManifest},
		{"too narrow", "/v1/layouts", `{"album": {"grid": {"min_columns": 2, "max_columns": 2}, "items": [{"id": "x", "width": 1, "height": 1}]}, "width": 5}`, http.StatusUnprocessableEntity, ferrors.ErrCodeSizing},
		{"bad render format", "/v1/render/gif", layoutBody(""), http.StatusBadRequest, ferrors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != string(tt.code) {
				t.Errorf("code = %q, want %q (message %q)", body.Code, tt.code, body.Message)
			}
			if body.RequestID == "" {
				t.Error("error response missing request id")
			}
		})
	}
}

func TestWrongContentType(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/v1/layouts", "text/plain", strings.NewReader(layoutBody("")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/layouts")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ferrors.New(ferrors.ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{fmt.Errorf("layout: %w", ferrors.New(ferrors.ErrCodeSizing, "x")), http.StatusUnprocessableEntity},
		{ferrors.New(ferrors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{ferrors.New(ferrors.ErrCodePlacement, "x"), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/v1/layouts", `{"album":`)
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := "decode request: unexpected EOF"; body.Message != want {
		t.Errorf("message = %q, want %q", body.Message, want)
	}
}

func TestClientMessage(t *testing.T) {
	cause := errors.New("bad byte")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("boom"), "boom"},
		{"no cause", ferrors.New(ferrors.ErrCodeInvalidInput, "album is required"), "album is required"},
		{"cause once", ferrors.Wrap(ferrors.ErrCodeInvalidInput, cause, "decode request"), "decode request: bad byte"},
		{"coded cause", ferrors.Wrap(ferrors.ErrCodeInvalidManifest, ferrors.New(ferrors.ErrCodeInvalidConfig, "max_columns < min_columns"), "grid"), "grid: max_columns < min_columns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clientMessage(tt.err); got != tt.want {
				t.Errorf("clientMessage() = %q, want %q", got, tt.want)
			}
			if n := strings.Count(tt.err.Error(), "bad byte"); n > 1 {
				t.Errorf("Error() repeats the cause: %q", tt.err.Error())
			}
		})
	}
}
