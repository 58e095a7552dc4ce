package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	cerrors "github.com/czcorpus/kwic/internal/errors"
	"github.com/czcorpus/kwic/internal/search"
	"github.com/czcorpus/kwic/internal/web/cache"
)

// searchResponse is the JSON body returned by GET /v1/search.
type searchResponse struct {
	Total   int                  `json:"total"`
	Offset  int                  `json:"offset"`
	Limit   int                  `json:"limit"`
	Records []search.KWICRecord  `json:"records"`
}

type handler struct {
	idx    *search.Index
	cfg    Config
	logger *zap.Logger
	cache  cache.Cache
}

// handleSearch implements GET {prefix}/search?q=<cql>&left=&right=&offset=&limit=,
// the HTTP rendering of spec.md §6's search contract. The `query` param
// name and the offset/limit pagination shape follow the reference
// server's request params (original_source/concordancer/server.py), the
// spec.md distillation having dropped pagination entirely.
func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cql := firstNonEmpty(q.Get("q"), q.Get("query"))
	if cql == "" {
		writeError(w, http.StatusBadRequest, cerrors.Diagnostic{Category: "request", Message: "missing required 'q' parameter"})
		return
	}

	left := intParam(q, "left", h.cfg.DefaultLeft)
	right := intParam(q, "right", h.cfg.DefaultRight)
	offset := intParam(q, "offset", 0)
	limit := intParam(q, "limit", h.cfg.MaxPageSize)
	if limit <= 0 || limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	cacheKey := cache.Key(cql, left, right, offset, limit)
	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			w.Write(cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	results, errs := h.idx.Search(cql, left, right)
	if len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs)
		return
	}

	resp := searchResponse{Offset: offset, Limit: limit, Records: []search.KWICRecord{}}
	i := 0
	for kwic := range results {
		select {
		case <-ctx.Done():
			writeError(w, http.StatusGatewayTimeout, cerrors.Diagnostic{Category: "request", Message: "search timed out"})
			return
		default:
		}
		if i >= offset && len(resp.Records) < limit {
			resp.Records = append(resp.Records, search.ToRecord(kwic))
		}
		i++
	}
	resp.Total = i

	body, err := json.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, cerrors.Diagnostic{Category: "internal", Message: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)

	if h.cache != nil {
		_ = h.cache.Set(r.Context(), cacheKey, body, 5*time.Minute)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func intParam(q map[string][]string, name string, fallback int) int {
	vals, ok := q[name]
	if !ok || len(vals) == 0 || vals[0] == "" {
		return fallback
	}
	n, err := strconv.Atoi(vals[0])
	if err != nil {
		return fallback
	}
	return n
}

func writeError(w http.ResponseWriter, status int, d cerrors.Diagnostic) {
	writeErrorsBody(w, status, []cerrors.Diagnostic{d})
}

func writeErrors(w http.ResponseWriter, status int, errs []error) {
	writeErrorsBody(w, status, cerrors.ToDiagnostics(errs))
}

func writeErrorsBody(w http.ResponseWriter, status int, diags []cerrors.Diagnostic) {
	body, err := cerrors.ToJSON(diags)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
