package archive

import "errors"

// ErrNotFound is returned by Get when no document exists under the
// requested name.
var ErrNotFound = errors.New("archive: document not found")

// IsNotFound reports whether the error indicates a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
