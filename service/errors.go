package service

import "errors"

var (
	// ErrLocationNotFound is returned when the requested location doesn't exist
	ErrLocationNotFound = errors.New("location not found")
	// ErrStoreNotFound is returned when the requested store doesn't exist
	ErrStoreNotFound = errors.New("store not found")
	// ErrSectionNotFound is returned when a section is not part of a location's resolved layout
	ErrSectionNotFound = errors.New("section not found")
	// ErrSuperseded is returned when a newer pass for another location replaced this one
	ErrSuperseded = errors.New("resolution superseded by a newer location")
	// ErrEmptyLayout is returned when publishing a layout with no sections
	ErrEmptyLayout = errors.New("cannot publish an empty layout")
	// ErrInvalidLayout is returned when a layout fails validation
	ErrInvalidLayout = errors.New("layout is invalid")
)

// ErrInvalidImageSource is returned when an image source is neither an http(s) URL nor a usable Drive link
var ErrInvalidImageSource = errors.New("invalid image source")
