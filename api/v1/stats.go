package v1

import (
	"net/http"
	"time"

	"github.com/seowoojae/shelfd/http/request"
	"github.com/seowoojae/shelfd/http/response"
	"github.com/seowoojae/shelfd/model"
	"github.com/seowoojae/shelfd/shelf"
)

type monthlyStatsResponse struct {
	Year   int     `json:"year"`
	Counts [12]int `json:"counts"`
	Total  int     `json:"total"`
}

// monthlyStats buckets the finished shelf by completion month for one year.
func (h *Handler) monthlyStats(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	year := request.QueryIntParam(r, "year", time.Now().Year())

	finished := model.StatusFinished
	books, err := h.store.ListBooks(&model.FindBook{UserID: &userID, Status: &finished})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	counts := shelf.MonthlyCounts(books, year)
	response.OK(w, r, &monthlyStatsResponse{
		Year:   year,
		Counts: counts,
		Total:  shelf.Total(counts),
	})
}
