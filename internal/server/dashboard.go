package server

import _ "embed"

// The dashboard is a single self-contained page so the binary needs no
// static file tree next to it.
//
//go:embed dashboard.html
var dashboardHTML []byte
