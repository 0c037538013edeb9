package dialect

import (
	"fmt"
)

type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend: %s", e.Name)
}
