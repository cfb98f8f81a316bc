package model

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrExpired   = errors.New("authorization code expired")
	ErrRejected  = errors.New("authorization code rejected")
	ErrCancelled = errors.New("authorization cancelled")

	ErrInvalidDate = errors.New("date outside booking window")
	ErrForbidden   = errors.New("forbidden")
)
