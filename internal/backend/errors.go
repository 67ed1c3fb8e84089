package backend

import (
	"errors"
	"strconv"
)

// StatusError is a non-2xx answer from an inference server or peer proxy.
type StatusError struct {
	Code   int
	Body   string
	Target string
}

func (e *StatusError) Error() string {
	msg := "upstream " + e.Target + " returned " + strconv.Itoa(e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsStatusError reports whether err wraps a StatusError.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
