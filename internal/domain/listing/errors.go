package listing

import "errors"

var (
	ErrPropertyNotFound     = errors.New("listing: property not found")
	ErrInvalidPropertyType  = errors.New("listing: invalid property type")
	ErrInvalidOperation     = errors.New("listing: invalid operation")
	ErrInvalidLifecycle     = errors.New("listing: invalid lifecycle state")
	ErrTitleRequired        = errors.New("listing: title is required")
	ErrOwnerRequired        = errors.New("listing: owner is required")
	ErrInvalidTransition    = errors.New("listing: invalid publication state transition")
	ErrExternalIDRequired   = errors.New("listing: external id is required to mark a listing published")
	ErrPropertyTerminated   = errors.New("listing: property lifecycle is terminada")
	ErrUnknownPortal        = errors.New("listing: unknown portal")
)
