package v1

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/http/request"
	"github.com/seowoojae/shelfd/http/response"
	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
)

const recentSearchLimit = 10

type searchBooksResponse struct {
	Documents []model.CandidateBook `json:"documents"`
}

// searchBooks proxies the catalog. A missing query is the caller's fault; an
// upstream failure is not, and surfaces as a server error.
func (h *Handler) searchBooks(w http.ResponseWriter, r *http.Request) {
	query := request.QueryStringParam(r, "query", "")
	if query == "" {
		response.BadRequest(w, r, errors.New("query is required"))
		return
	}
	page := request.QueryIntParam(r, "page", 1)
	size := request.QueryIntParam(r, "size", 20)

	documents, err := h.catalog.Search(r.Context(), query, page, size)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	userID := request.GetUserID(r)
	if err := h.store.UpsertRecentSearch(userID, query); err != nil {
		log.Warn("Failed to record recent search", zap.String("term", query), zap.Error(err))
	}

	response.OK(w, r, &searchBooksResponse{Documents: documents})
}

// lookupBook enriches an ISBN with page count and better cover art. This
// endpoint never fails; unresolvable ISBNs return the zero enrichment.
func (h *Handler) lookupBook(w http.ResponseWriter, r *http.Request) {
	isbn := request.QueryStringParam(r, "isbn", "")
	response.OK(w, r, h.catalog.Lookup(r.Context(), isbn))
}

func (h *Handler) listRecentSearches(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	searches, err := h.store.ListRecentSearches(userID, recentSearchLimit)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, searches)
}

func (h *Handler) removeRecentSearch(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	term := request.QueryStringParam(r, "term", "")
	if term == "" {
		response.BadRequest(w, r, errors.New("term is required"))
		return
	}

	if err := h.store.RemoveRecentSearch(userID, term); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

func (h *Handler) clearRecentSearches(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	if err := h.store.ClearRecentSearches(userID); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
