package app

import (
	"errors"

	"github.com/alexanderramin/chewy/internal/trello"
)

var (
	// ErrBoardNotFound indicates the board is not among the user's boards.
	ErrBoardNotFound = errors.New("board not found")

	// ErrNotEnoughLists indicates a board with fewer lists than required.
	ErrNotEnoughLists = errors.New("board doesn't have enough lists")

	// ErrMissingStage indicates a stage no list could be matched to while
	// strict stage resolution is enabled.
	ErrMissingStage = errors.New("no list for stage")

	// ErrNoBoard indicates no board was given and none was remembered.
	ErrNoBoard = errors.New("no board selected")
)

type DashboardErrorCode string

const (
	DashboardErrUnauthorized   DashboardErrorCode = "UNAUTHORIZED"
	DashboardErrBoardNotFound  DashboardErrorCode = "BOARD_NOT_FOUND"
	DashboardErrNotEnoughLists DashboardErrorCode = "NOT_ENOUGH_LISTS"
	DashboardErrMissingStage   DashboardErrorCode = "MISSING_STAGE"
	DashboardErrNoBoard        DashboardErrorCode = "NO_BOARD"
	DashboardErrFetchFailed    DashboardErrorCode = "FETCH_FAILED"
)

type DashboardError struct {
	Code    DashboardErrorCode `json:"code"`
	Message string             `json:"message"`
}

func (e *DashboardError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ClassifyError maps a failure of the fetch-and-compute cycle to its code.
func ClassifyError(err error) DashboardErrorCode {
	var de *DashboardError
	switch {
	case errors.As(err, &de):
		return de.Code
	case errors.Is(err, trello.ErrUnauthorized):
		return DashboardErrUnauthorized
	case errors.Is(err, ErrBoardNotFound):
		return DashboardErrBoardNotFound
	case errors.Is(err, ErrNotEnoughLists):
		return DashboardErrNotEnoughLists
	case errors.Is(err, ErrMissingStage):
		return DashboardErrMissingStage
	case errors.Is(err, ErrNoBoard):
		return DashboardErrNoBoard
	default:
		return DashboardErrFetchFailed
	}
}

// NewDashboardError wraps err into a DashboardError.
func NewDashboardError(err error) *DashboardError {
	return &DashboardError{Code: ClassifyError(err), Message: err.Error()}
}
