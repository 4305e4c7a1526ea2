package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/seowoojae/shelfd/http/request"
	"github.com/seowoojae/shelfd/http/response"
	"github.com/seowoojae/shelfd/model"
)

func (h *Handler) listBookMemos(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID, UserID: &userID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	memos, err := h.store.ListMemos(&model.FindMemo{UserID: &userID, BookID: &bookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, memos)
}

func (h *Handler) addMemo(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		response.BadRequest(w, r, errors.New("content is empty"))
		return
	}

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID, UserID: &userID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	memo, err := h.store.AddMemo(&model.Memo{
		UserID:  userID,
		BookID:  bookID,
		Content: body.Content,
	})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, memo)
}

// listMemos returns every memo of the user joined with its book, newest
// update first.
func (h *Handler) listMemos(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	memos, err := h.store.ListMemosWithBook(userID)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, memos)
}

func (h *Handler) updateMemo(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	memoID := request.RouteIntParam(r, "id")

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		response.BadRequest(w, r, errors.New("content is empty"))
		return
	}

	memo, err := h.store.GetMemo(&model.FindMemo{ID: &memoID, UserID: &userID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if memo == nil {
		response.NotFound(w, r)
		return
	}

	updated, err := h.store.UpdateMemo(memoID, userID, body.Content)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, updated)
}

func (h *Handler) deleteMemo(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	memoID := request.RouteIntParam(r, "id")

	memo, err := h.store.GetMemo(&model.FindMemo{ID: &memoID, UserID: &userID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if memo == nil {
		response.NotFound(w, r)
		return
	}

	if err := h.store.RemoveMemo(memoID, userID); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
