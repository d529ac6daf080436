// Package web carries the dashboard templates inside the binary.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
