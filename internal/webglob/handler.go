// Package webglob exposes the goglob engine over HTTP: one route lists the
// configured roots and another runs a pattern against a named root and
// returns the matched paths as JSON, in the same handler-attaches-to-chi-router shape as the teacher's
// pkg/handler.
package webglob

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/koblas/goglob/internal/config"
	"github.com/koblas/goglob/pkg/goglob"
)

// State is the per-root handler, analogous to the teacher's HandlerState.
type State struct {
	roots     map[string]config.Root
	gitignore bool
	logger    goglob.Logger
}

// New builds a State from a loaded Configuration.
func New(cfg config.Configuration) *State {
	roots := make(map[string]config.Root, len(cfg.Roots))
	for _, r := range cfg.Roots {
		roots[r.Name] = r
	}
	return &State{
		roots:     roots,
		gitignore: cfg.Gitignore,
		logger:    goglob.NewLogger(cfg.Debug),
	}
}

// AttachRoutes wires the /roots and /{root}/glob endpoints onto router.
func (s *State) AttachRoutes(router chi.Router) {
	router.Get("/roots", s.listRoots)
	router.Get("/{root}/glob", s.glob)
}

type rootInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *State) listRoots(w http.ResponseWriter, r *http.Request) {
	out := make([]rootInfo, 0, len(s.roots))
	for _, root := range s.roots {
		out = append(out, rootInfo{Name: root.Name, Path: root.Path})
	}
	s.writeJSON(w, http.StatusOK, out)
}

type globResponse struct {
	Pattern   string   `json:"pattern"`
	Paths     []string `json:"paths"`
	Count     int      `json:"count"`
	Ownership string   `json:"ownership"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *State) glob(w http.ResponseWriter, r *http.Request) {
	rootName := chi.URLParam(r, "root")
	root, ok := s.roots[rootName]
	if !ok {
		s.sendError(w, http.StatusNotFound, "unknown_root", "no such root: "+rootName)
		return
	}

	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		s.sendError(w, http.StatusBadRequest, "bad_request", "pattern query parameter is required")
		return
	}

	flagBits := parseFlags(r.URL.Query().Get("flags"))

	opts := []goglob.DriverOption{goglob.WithLogger(s.logger)}
	if s.gitignore && flagBits.Has(goglob.GITIGNORE) {
		if ignore, err := goglob.FromGitignoreFiles(root.Path); err == nil {
			opts = append(opts, goglob.WithIgnore(ignore))
		}
	}

	result, err := goglob.Glob(joinPattern(root.Path, pattern), flagBits, opts...)
	if err != nil {
		if err == goglob.ErrNoMatch {
			s.writeJSON(w, http.StatusOK, globResponse{Pattern: pattern, Paths: []string{}, Ownership: goglob.Owned.String()})
			return
		}
		s.sendError(w, http.StatusInternalServerError, "internal_server_error", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, globResponse{
		Pattern:   pattern,
		Paths:     result.Paths(),
		Count:     result.Count(),
		Ownership: result.OwnershipTag().String(),
	})
}

func (s *State) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *State) sendError(w http.ResponseWriter, status int, code, message string) {
	body := errorBody{}
	body.Error.Code = code
	body.Error.Message = message
	s.writeJSON(w, status, body)
}

func joinPattern(root, pattern string) string {
	if len(pattern) > 0 && pattern[0] == '/' {
		return root + pattern
	}
	return root + "/" + pattern
}

// parseFlags turns a comma-separated list of flag names (e.g.
// "brace,extglob,mark") from the query string into a Flag bitmask. Unknown
// names are ignored rather than rejected, matching the engine's general
// "silently permissive" query surface.
func parseFlags(raw string) goglob.Flag {
	var f goglob.Flag
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			switch raw[start:i] {
			case "brace":
				f |= goglob.BRACE
			case "tilde":
				f |= goglob.TILDE
			case "extglob":
				f |= goglob.EXTGLOB
			case "mark":
				f |= goglob.MARK
			case "nosort":
				f |= goglob.NOSORT
			case "nocheck":
				f |= goglob.NOCHECK
			case "onlydir":
				f |= goglob.ONLYDIR
			case "casefold":
				f |= goglob.CASEFOLD
			case "gitignore":
				f |= goglob.GITIGNORE
			}
			start = i + 1
		}
	}
	return f
}
