package billing

import "errors"

// ErrNilClient is returned when a recorder is constructed without a
// database client.
var ErrNilClient = errors.New("billing recorder requires a client")
