package entity

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrSpaceNotFound     = errors.New("space not found")
)
