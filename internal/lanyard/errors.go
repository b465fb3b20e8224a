package lanyard

import "fmt"

// TransportError reports a request that did not produce a usable envelope:
// the call could not be made, the API answered with a non-2xx status, or
// the body was not valid JSON.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned status %d", e.Op, e.StatusCode)
	}
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
