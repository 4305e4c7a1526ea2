package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/http/request"
	"github.com/seowoojae/shelfd/http/response"
	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
	"github.com/seowoojae/shelfd/shelf"
)

type shelvesResponse struct {
	*shelf.Shelves
	Counts map[model.BookStatus]int `json:"counts"`
}

// listBooks returns the whole library partitioned into shelves, or a flat
// list when ?status= narrows it. ?year=&month= further narrow the finished
// shelf to one calendar month.
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	statusParam := request.QueryStringParam(r, "status", "")
	if statusParam == "" {
		books, err := h.store.ListBooks(&model.FindBook{UserID: &userID})
		if err != nil {
			response.ServerError(w, r, err)
			return
		}
		shelves := shelf.Partition(books)
		response.OK(w, r, &shelvesResponse{Shelves: shelves, Counts: shelves.Counts()})
		return
	}

	status := model.BookStatus(statusParam)
	if !status.Valid() {
		response.BadRequest(w, r, errors.Errorf("unknown book status: %q", status))
		return
	}

	books, err := h.store.ListBooks(&model.FindBook{UserID: &userID, Status: &status})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	if status == model.StatusFinished {
		year := request.QueryIntParam(r, "year", 0)
		month := request.QueryIntParam(r, "month", 0)
		if year > 0 && month >= 1 && month <= 12 {
			books = shelf.FilterByMonth(books, year, time.Month(month))
		}
	}
	response.OK(w, r, books)
}

// addBook inserts a catalog candidate onto a shelf. The candidate is checked
// against the library first, then enriched with page count and cover art
// when its ISBN resolves.
func (h *Handler) addBook(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	var req model.AddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if req.Book.Title == "" {
		response.BadRequest(w, r, errors.New("title is empty"))
		return
	}
	if !req.Status.Valid() {
		response.BadRequest(w, r, errors.Errorf("unknown book status: %q", req.Status))
		return
	}

	added, err := h.store.CheckBookAdded(userID, &req.Book)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if added {
		response.Conflict(w, r, errors.New("book already added"))
		return
	}

	book := &model.Book{
		UserID:      userID,
		Title:       req.Book.Title,
		Authors:     req.Book.Authors,
		Translators: req.Book.Translators,
		Thumbnail:   req.Book.Thumbnail,
		Publisher:   req.Book.Publisher,
		Contents:    req.Book.Contents,
		ISBN:        req.Book.ISBN,
	}

	// A manually entered record carries no catalog identity. A title search
	// fills in what the catalog knows; a failed or empty search leaves the
	// record as typed.
	if book.ISBN == "" {
		if candidates := h.catalog.SearchOrEmpty(r.Context(), book.Title, 1, 1); len(candidates) > 0 {
			hit := candidates[0]
			book.ISBN = hit.ISBN
			if book.Thumbnail == "" {
				book.Thumbnail = hit.Thumbnail
			}
			if book.Publisher == "" {
				book.Publisher = hit.Publisher
			}
			if len(book.Authors) == 0 {
				book.Authors = hit.Authors
			}
		}
	}

	// Best effort: a failed lookup just leaves the candidate as-is.
	if enrichment := h.catalog.Lookup(r.Context(), book.ISBN); enrichment.Page > 0 || enrichment.Cover != "" {
		if enrichment.Page > 0 {
			book.TotalPage = enrichment.Page
		}
		if enrichment.Cover != "" {
			book.Thumbnail = enrichment.Cover
		}
	}

	book, err = shelf.Transition(book, req.Status, time.Now())
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	newBook, err := h.store.AddBook(book)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	h.queueCoverMirror(newBook)

	response.Created(w, r, newBook)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
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
	response.OK(w, r, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
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

	if err := h.store.RemoveBook(bookID, userID); err != nil {
		log.Error("Failed to remove book", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if err := h.covers.Remove(bookID); err != nil {
		log.Warn("Failed to remove mirrored cover", zap.Int("book_id", bookID), zap.Error(err))
	}
	response.NoContent(w, r)
}

func (h *Handler) updateBookStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status model.BookStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	h.mutateBook(w, r, func(book *model.Book) (*model.Book, error) {
		return shelf.Transition(book, body.Status, time.Now())
	})
}

func (h *Handler) updateBookProgress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CurrentPage *int `json:"current_page"`
		TotalPage   *int `json:"total_page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if body.CurrentPage == nil && body.TotalPage == nil {
		response.BadRequest(w, r, errors.New("nothing to update"))
		return
	}

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

	if body.TotalPage != nil {
		book = shelf.ApplyTotalPage(book, *body.TotalPage)
	}
	if body.CurrentPage != nil {
		book = shelf.ApplyCurrentPage(book, *body.CurrentPage)
	}

	updated, err := h.store.UpdateBook(book)
	if err != nil {
		log.Error("Failed to update book", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, &progressResponse{
		Book:       updated,
		Percentage: shelf.Percentage(updated.CurrentPage, updated.TotalPage),
	})
}

type progressResponse struct {
	Book       *model.Book `json:"book"`
	Percentage int         `json:"percentage"`
}

func (h *Handler) updateBookRating(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	h.mutateBook(w, r, func(book *model.Book) (*model.Book, error) {
		return shelf.ApplyRating(book, body.Rating), nil
	})
}

func (h *Handler) updateBookDates(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if body.StartDate != nil && body.EndDate != nil && body.EndDate.Before(*body.StartDate) {
		response.BadRequest(w, r, errors.New("end date is before start date"))
		return
	}

	h.mutateBook(w, r, func(book *model.Book) (*model.Book, error) {
		if body.StartDate != nil {
			book.StartDate = body.StartDate
		}
		if body.EndDate != nil {
			book.EndDate = body.EndDate
		}
		return book, nil
	})
}

// mutateBook loads the caller's book, applies one change and persists it
// right away. Each commit is one write.
func (h *Handler) mutateBook(w http.ResponseWriter, r *http.Request, apply func(*model.Book) (*model.Book, error)) {
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

	next, err := apply(book)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	updated, err := h.store.UpdateBook(next)
	if err != nil {
		log.Error("Failed to update book", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, updated)
}

// queueCoverMirror schedules a local copy of the cover. Books without a
// thumbnail keep none; failures leave the remote URL in place.
func (h *Handler) queueCoverMirror(book *model.Book) {
	if book.Thumbnail == "" || h.mirrorPool == nil {
		return
	}
	job, err := h.store.AddJob(model.Job{
		UserID:   book.UserID,
		BookID:   book.ID,
		Type:     model.JobTypeCoverMirror,
		Status:   model.JobStatusPending,
		CoverURL: book.Thumbnail,
	})
	if err != nil {
		log.Error("Failed to add cover mirror job", zap.Int("book_id", book.ID), zap.Error(err))
		return
	}
	go h.mirrorPool.Push(*job)
}
