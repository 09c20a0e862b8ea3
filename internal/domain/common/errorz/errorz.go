package errorz

import "errors"

var (
	ErrInvalidLocationID  = errors.New("invalid location id")
	ErrInvalidNotifyTime  = errors.New("invalid notify time")
	ErrMalformedCallback  = errors.New("malformed callback data")
	ErrUnknownAction      = errors.New("unknown callback action")
	ErrUserNotFound       = errors.New("user not found")
	ErrTickAlreadyRunning = errors.New("tick already running")
	ErrInvalidFeed        = errors.New("invalid calendar feed")
)
