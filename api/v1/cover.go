package v1

import (
	"net/http"

	"github.com/seowoojae/shelfd/http/request"
	"github.com/seowoojae/shelfd/http/response"
	"github.com/seowoojae/shelfd/model"
)

// getCover serves the mirrored cover file. Books whose mirror never landed
// redirect to the remote thumbnail instead.
func (h *Handler) getCover(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "bookID")

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID, UserID: &userID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	if !book.HasLocalCover || !h.covers.Has(bookID) {
		if book.Thumbnail == "" {
			response.NotFound(w, r)
			return
		}
		http.Redirect(w, r, book.Thumbnail, http.StatusFound)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, h.covers.Path(bookID))
}
