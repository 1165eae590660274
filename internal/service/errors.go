package service

import "errors"

var (
	ErrFormNotFound     = errors.New("form not found")
	ErrResponseNotFound = errors.New("response not found")
	ErrSessionNotFound  = errors.New("fill session not found")
	ErrForbidden        = errors.New("not the owner of this form")
	ErrSubmissionFailed = errors.New("response could not be saved")
	ErrInvalidResponse  = errors.New("invalid response")
	ErrFormChanged      = errors.New("form changed since the fill session started")
)
