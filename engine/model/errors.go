package model

import "errors"

var (
	ErrEmptyID           = errors.New("empty id")
	ErrDuplicatePart     = errors.New("duplicate part id")
	ErrDuplicateMaterial = errors.New("duplicate material id")
	ErrUnknownPart       = errors.New("unknown part")
	ErrUnknownMaterial   = errors.New("unknown material")
	ErrInvalidCamera     = errors.New("invalid camera position")
	ErrNoParts           = errors.New("model has no parts")
)
