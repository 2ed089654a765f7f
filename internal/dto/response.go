package dto

import (
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
)

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// FailureResponse is returned by the toggle-style mutations when they cannot complete.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewFailureResponse(err error) FailureResponse {
	return FailureResponse{
		Success: false,
		Error:   err.Error(),
	}
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ToggleFollowResponse struct {
	Success      bool `json:"success"`
	FollowingNow bool `json:"following_now"`
}

type ToggleLikeResponse struct {
	Success bool `json:"success"`
	Liked   bool `json:"liked"`
}

type IsFollowingResponse struct {
	Following bool `json:"following"`
}

type SyncResponse struct {
	Ok   bool        `json:"ok"`
	User *model.User `json:"user"`
}
