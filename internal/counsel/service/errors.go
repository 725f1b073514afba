package service

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveUser       = errors.New("user is inactive")

	ErrGoogleDisabled = errors.New("google login not configured")
	ErrGoogleToken    = errors.New("google id token rejected")

	ErrInvalidUniversityID = errors.New("university id must not be empty")
	ErrSelectionNotFound   = errors.New("university not found in selection")

	ErrVoiceUnconfigured = errors.New("livekit credentials not configured")
)
