// Package cgi is a small GPU-rendering toolkit layered on the gogpu
// stack. It glues three things together:
//
//   - a retained scene graph of drawable nodes with flexbox layout
//     (package dom),
//   - low-level GPU bring-up: instance, adapter, device and queue
//     selection (package vgi),
//   - a single-window event shim over gogpu (package win).
//
// The root package carries the pieces shared by all of them: colors,
// configuration, the render-target Screen, the surface error policy
// and the package logger.
//
// By default cgi produces no log output; see [SetLogger].
package cgi
