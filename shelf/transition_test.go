package shelf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seowoojae/shelfd/model"
)

func TestStartReadingSetsStartDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	book := &model.Book{Status: model.StatusWish, TotalPage: 320}

	next, err := Transition(book, model.StatusReading, now)
	require.NoError(t, err)

	require.NotNil(t, next.StartDate)
	assert.Equal(t, now, *next.StartDate)
	assert.Nil(t, next.EndDate)
	assert.Equal(t, 320, next.TotalPage)
	// the input is left alone
	assert.Equal(t, model.StatusWish, book.Status)
	assert.Nil(t, book.StartDate)
}

func TestStartReadingKeepsExistingStartDate(t *testing.T) {
	started := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	now := started.AddDate(0, 3, 0)
	book := &model.Book{Status: model.StatusFinished, StartDate: &started, EndDate: &now}

	next, err := Transition(book, model.StatusReading, now)
	require.NoError(t, err)

	require.NotNil(t, next.StartDate)
	assert.Equal(t, started, *next.StartDate)
	assert.Nil(t, next.EndDate, "re-reading clears the end date")
}

func TestFinishReading(t *testing.T) {
	started := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 15, 20, 30, 0, 0, time.UTC)
	book := &model.Book{
		Status:      model.StatusReading,
		StartDate:   &started,
		CurrentPage: 120,
		TotalPage:   200,
	}

	next, err := Transition(book, model.StatusFinished, now)
	require.NoError(t, err)

	assert.Equal(t, 200, next.CurrentPage)
	require.NotNil(t, next.EndDate)
	assert.Equal(t, now, *next.EndDate)
	require.NotNil(t, next.StartDate)
	assert.Equal(t, started, *next.StartDate, "original start date preserved")
}

func TestFinishWithoutStartDate(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	book := &model.Book{Status: model.StatusWish, TotalPage: 80}

	next, err := Transition(book, model.StatusFinished, now)
	require.NoError(t, err)

	require.NotNil(t, next.StartDate)
	require.NotNil(t, next.EndDate)
	assert.Equal(t, now, *next.StartDate)
	assert.Equal(t, now, *next.EndDate)
	assert.Equal(t, next.TotalPage, next.CurrentPage)
}

func TestBackToWishResetsEverything(t *testing.T) {
	started := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	ended := started.AddDate(0, 1, 0)
	book := &model.Book{
		Status:      model.StatusFinished,
		StartDate:   &started,
		EndDate:     &ended,
		CurrentPage: 150,
		TotalPage:   150,
	}

	next, err := Transition(book, model.StatusWish, time.Now())
	require.NoError(t, err)

	assert.Nil(t, next.StartDate)
	assert.Nil(t, next.EndDate)
	assert.Equal(t, 0, next.CurrentPage)
}

func TestClearedDatesAreNotRestored(t *testing.T) {
	started := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	book := &model.Book{Status: model.StatusReading, StartDate: &started}

	wished, err := Transition(book, model.StatusWish, started.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Nil(t, wished.StartDate)

	later := started.AddDate(0, 6, 0)
	reading, err := Transition(wished, model.StatusReading, later)
	require.NoError(t, err)
	require.NotNil(t, reading.StartDate)
	assert.Equal(t, later, *reading.StartDate, "a fresh start date, not the old one")
}

func TestUnknownStatusRejected(t *testing.T) {
	_, err := Transition(&model.Book{}, model.BookStatus("dropped"), time.Now())
	assert.Error(t, err)
}
