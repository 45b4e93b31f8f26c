package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// ShortlistDependencies defines the interface for shortlist reads.
type ShortlistDependencies interface {
	TopN(ctx context.Context, n int) ([]Entry, error)
}

// ShortlistHandler handles shortlist requests.
type ShortlistHandler struct {
	deps     ShortlistDependencies
	maxLimit int
}

// NewShortlistHandler creates a new shortlist handler.
func NewShortlistHandler(deps ShortlistDependencies, maxLimit int) *ShortlistHandler {
	return &ShortlistHandler{
		deps:     deps,
		maxLimit: max(maxLimit, 1),
	}
}

// HandleGetShortlist handles GET /shortlist?limit=N requests. Without limit
// the first maxLimit entries are returned.
func (h *ShortlistHandler) HandleGetShortlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: %d > %d", ErrLimitExceeded, n, h.maxLimit))
		return
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
