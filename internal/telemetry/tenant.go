package telemetry

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
)

// DefaultHostPattern matches deployment hostnames of the form
// "webapi<24 hex chars>"; the hex segment is the board id.
const DefaultHostPattern = `(?i)webapi([0-9a-f]{24})`

// Resolver derives the board (tenant) id for a request from a fixed
// priority of signals: route param, query param, header, configured
// override, Host-header pattern, collector-URL pattern.
type Resolver struct {
	boardID      string
	collectorURL string
	pattern      *regexp.Regexp
}

// NewResolver builds a Resolver. boardID is the explicit process-wide
// override (BOARD_ID); pattern overrides DefaultHostPattern and must be
// a valid regexp with one capture group, or empty for the default.
func NewResolver(boardID, collectorURL, pattern string) (*Resolver, error) {
	if pattern == "" {
		pattern = DefaultHostPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Resolver{boardID: boardID, collectorURL: collectorURL, pattern: re}, nil
}

// Resolve returns the first non-empty board id signal on the request.
// The second return value reports whether any signal resolved; absence
// is a normal outcome, never an error.
func (r *Resolver) Resolve(req *http.Request) (string, bool) {
	if id := chi.URLParam(req, "boardId"); id != "" {
		return id, true
	}
	if id := req.URL.Query().Get("boardId"); id != "" {
		return id, true
	}
	if id := req.Header.Get("x-board-id"); id != "" {
		return id, true
	}
	if r.boardID != "" {
		return r.boardID, true
	}
	if id, ok := r.match(req.Host); ok {
		return id, true
	}
	return r.match(r.collectorURL)
}

// ResolveStatic resolves the board id without a request, for startup
// failures: configured override first, then the collector URL pattern.
func (r *Resolver) ResolveStatic() (string, bool) {
	if r.boardID != "" {
		return r.boardID, true
	}
	return r.match(r.collectorURL)
}

func (r *Resolver) match(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	m := r.pattern.FindStringSubmatch(s)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}
