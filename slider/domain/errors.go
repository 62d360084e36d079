package domain

import "errors"

var (
	ErrSliderNotFound = errors.New("slider not found")
	ErrImageNotFound  = errors.New("image not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrPageNotFound   = errors.New("page not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
)
