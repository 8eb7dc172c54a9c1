// Package lifecycle holds process-wide lifecycle constants shared by infra and delivery.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks (DB ping, HTTP shutdown, publisher close).
const DefaultTimeout = 10 * time.Second
