package services

import (
	"testing"

	"github.com/yungbote/selfinvest-backend/internal/types"
)

func intPtr(v int) *int { return &v }

func TestSummarizeBooks(t *testing.T) {
	books := []*types.Book{
		{Status: types.BookStatusCompleted, PageCount: 300, CurrentPage: 300, Rating: intPtr(4)},
		{Status: types.BookStatusCompleted, PageCount: 200, CurrentPage: 200, Rating: intPtr(2)},
		{Status: types.BookStatusInProgress, PageCount: 400, CurrentPage: 150},
		{Status: types.BookStatusNotStarted, PageCount: 500},
	}
	got := summarizeBooks(books)

	if got.Completed != 2 {
		t.Errorf("Completed = %d, want 2", got.Completed)
	}
	if got.TotalPagesRead != 650 {
		t.Errorf("TotalPagesRead = %d, want 650", got.TotalPagesRead)
	}
	if got.ByStatus[types.BookStatusInProgress] != 1 {
		t.Errorf("ByStatus[in_progress] = %d, want 1", got.ByStatus[types.BookStatusInProgress])
	}
	if !almostEqual(got.AverageRating, 3.0) {
		t.Errorf("AverageRating = %v, want 3", got.AverageRating)
	}
}

func TestSummarizeBooksEmpty(t *testing.T) {
	got := summarizeBooks(nil)
	if got.TotalPagesRead != 0 || got.Completed != 0 || got.AverageRating != 0 {
		t.Errorf("empty shelf summary = %+v, want zeros", got)
	}
}
