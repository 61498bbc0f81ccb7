package challenge

import (
	"errors"
	"net/http"
)

// Error is a business error with a stable code the client can match on.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// 参加者関連 R-5xx
var (
	ErrUserNotFound   = &Error{Code: "R-500", Status: http.StatusNotFound, Message: "user not found"}
	ErrRoomNotFound   = &Error{Code: "R-501", Status: http.StatusNotFound, Message: "challenge room not found"}
	ErrAlreadyJoined  = &Error{Code: "R-502", Status: http.StatusBadRequest, Message: "user already joined this challenge"}
	ErrFullRoom       = &Error{Code: "R-503", Status: http.StatusBadRequest, Message: "challenge room is at capacity"}
	ErrNotParticipant = &Error{Code: "R-504", Status: http.StatusBadRequest, Message: "user is not an active participant of this challenge"}
	// Transient: the room lock could not be acquired in time. Unlike
	// R-503 the caller may retry.
	ErrJoinContention = &Error{Code: "R-505", Status: http.StatusServiceUnavailable, Message: "challenge room is busy, try again"}
)

// ルーム関連 R-6xx
var (
	ErrInvalidCapacity = &Error{Code: "R-600", Status: http.StatusBadRequest, Message: "capacity must be a positive integer"}
	ErrInvalidPeriod   = &Error{Code: "R-601", Status: http.StatusBadRequest, Message: "challenge end date must be after the start date"}
	ErrNotRoomHost     = &Error{Code: "R-602", Status: http.StatusForbidden, Message: "only the room host may do this"}
)

// ミッション関連 R-7xx
// R-700/R-701 and R-703 are retired codes and stay unused so that old
// clients never see them repurposed.
var (
	ErrMissionNotInitialized   = &Error{Code: "R-702", Status: http.StatusBadRequest, Message: "today's mission has not been initialized"}
	ErrMissionAlreadyCompleted = &Error{Code: "R-704", Status: http.StatusBadRequest, Message: "today's mission is already completed"}
	ErrNoVideoToday            = &Error{Code: "R-705", Status: http.StatusBadRequest, Message: "no mission video has been posted today"}
)

// コメント関連 R-8xx
var (
	ErrCommentNotFound  = &Error{Code: "R-800", Status: http.StatusNotFound, Message: "comment not found"}
	ErrNotCommentAuthor = &Error{Code: "R-801", Status: http.StatusForbidden, Message: "only the comment author may do this"}
	ErrCommentRejected  = &Error{Code: "R-802", Status: http.StatusBadRequest, Message: "comment was rejected by moderation"}
)

// AsError unwraps err into a coded business error, if it is one.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
