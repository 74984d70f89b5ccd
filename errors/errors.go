package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrMalformedCommand = fmt.Errorf("malformed command")
	ErrSessionClosed    = fmt.Errorf("session closed")
	ErrEmbeddedNewline  = fmt.Errorf("command contains an embedded newline")
)
