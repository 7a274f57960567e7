// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across commands.
package httputil

import (
	"net/http"
	"time"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

// DefaultTimeout bounds a single E-utilities request when the
// configuration does not set one.
const DefaultTimeout = 15 * time.Second

// NewClient builds the HTTP client used for all E-utilities calls. The
// timeout covers the whole request including body read, so a stalled
// article download cannot hang a crawl.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
