package wsink

import "errors"

// ErrSinkClosed is returned for writes after Close.
var ErrSinkClosed = errors.New("websocket sink is closed")
