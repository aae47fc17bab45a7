// Package vgi handles low-level GPU bring-up: backend selection,
// instance creation, adapter enumeration and device/queue opening,
// behind a small builder. It exists so the rest of the toolkit (and
// headless tools) never touch the hal bootstrap directly.
package vgi
