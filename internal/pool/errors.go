package pool

import "fmt"

// ConnectionError reports a failure to open, acquire or close native
// connections. The native error is kept unchanged in Err.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %s failed: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
