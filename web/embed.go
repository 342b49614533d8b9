// Package web holds the page templates and the client bundle served under /dist.
package web

import "embed"

// Templates holds base.html and the page templates.
//
//go:embed templates/*.html
var Templates embed.FS

// Dist holds the client bundle used when no dist directory exists on disk.
//
//go:embed dist
var Dist embed.FS
