package wmcore

import "errors"

// Backend errors fall into two buckets. The backend wraps whatever the
// transport layer (X11 error codes, in xbackend) gives it into one of
// these two sentinel-carrying error kinds so the reducer never needs to
// know about protocol-specific error codes.

// TransientError wraps a backend error that implies its target no longer
// exists (BadWindow/BadMatch on an individual request in the X11 backend).
// The reducer logs it and treats the window as destroyed.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// FatalError wraps a backend error that means the display connection
// itself is gone. The reducer logs it, best-effort unmaps every client,
// and the process exits.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }
func (e *FatalError) Unwrap() error { return e.Err }

// IsTransientAbsence reports whether err is (or wraps) a TransientError.
func IsTransientAbsence(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// IsFatal reports whether err is (or wraps) a FatalError.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}
