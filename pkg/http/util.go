package http

import (
	"time"

	xutil "StockPulse/pkg/util"
)

// Query parameter parsing helpers, re-exported so handlers only import
// this package.

// ParseIntDefault returns def when s is empty or not an integer.
func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }

// ParseTimeDefault accepts RFC3339 or unix seconds; def on anything else.
func ParseTimeDefault(s string, def time.Time) time.Time { return xutil.ParseTimeDefault(s, def) }
