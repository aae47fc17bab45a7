package cgi

import "errors"

// Common errors returned by cgi operations.
var (
	// ErrSurfaceLost signals that the render surface was lost and must be
	// reconfigured. Recoverable: resize the screen with its current size
	// and retry the frame.
	ErrSurfaceLost = errors.New("cgi: surface lost")

	// ErrSurfaceOutOfMemory signals that the GPU ran out of memory while
	// acquiring the surface. Not recoverable: stop the event loop.
	ErrSurfaceOutOfMemory = errors.New("cgi: surface out of memory")

	// ErrScreenClosed is returned when operations are attempted on a
	// closed screen.
	ErrScreenClosed = errors.New("cgi: screen is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("cgi: invalid dimensions")

	// ErrBadColor is returned when a color string cannot be parsed.
	ErrBadColor = errors.New("cgi: bad color")
)

// RenderAction tells a render loop how to react to a frame error.
type RenderAction int

const (
	// RenderContinue: the frame failed in a transient way (or succeeded),
	// keep going.
	RenderContinue RenderAction = iota

	// RenderReconfigure: the surface was lost, reconfigure (resize) the
	// screen before the next frame.
	RenderReconfigure

	// RenderStop: the error is fatal for the render loop.
	RenderStop
)

// ActionFor maps a frame error onto the surface policy: lost surfaces are
// reconfigured, out-of-memory stops the loop, anything else is transient.
func ActionFor(err error) RenderAction {
	switch {
	case err == nil:
		return RenderContinue
	case errors.Is(err, ErrSurfaceLost):
		return RenderReconfigure
	case errors.Is(err, ErrSurfaceOutOfMemory):
		return RenderStop
	default:
		return RenderContinue
	}
}
