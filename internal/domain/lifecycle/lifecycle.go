// Package lifecycle holds shared timing constants for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks (DB ping, server shutdown, broker disconnect).
const DefaultTimeout = 10 * time.Second
