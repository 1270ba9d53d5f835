package domain

import "errors"

// Gateway errors.
var (
	// ErrEmptyInput is returned when no image bytes were supplied.
	ErrEmptyInput = errors.New("image is empty")
	// ErrUpstream wraps any failure of the remote model call.
	ErrUpstream = errors.New("model request failed")
	// ErrEmptyResponse is returned when the model answered without text.
	ErrEmptyResponse = errors.New("model returned no text")
)

// Meal flow errors.
var (
	ErrInputMissing     = errors.New("no analyzed photo to confirm")
	ErrSlotMissing      = errors.New("meal slot is required")
	ErrIndexOutOfRange  = errors.New("meal index out of range")
	ErrBusy             = errors.New("another analysis is in progress")
	ErrUnsupportedImage = errors.New("unsupported image data")
)

// Session, profile and community errors.
var (
	ErrInvalidGoal    = errors.New("goal calories must be between 1000 and 3000 in steps of 100")
	ErrInvalidUserID  = errors.New("user id is required")
	ErrInvalidProfile = errors.New("invalid profile")
	ErrPostNotFound   = errors.New("post not found")
	ErrInvalidPost    = errors.New("post requires author, image, title and description")
)
