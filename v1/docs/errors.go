package docs

import "errors"

// ErrNoSchemas is returned by DocumentTopic when none of the candidate
// subjects for a topic exist in the registry.
var ErrNoSchemas = errors.New("docs: no schemas found for topic")

// IsNoSchemas reports whether the error indicates a topic without any
// registered schema.
func IsNoSchemas(err error) bool {
	return errors.Is(err, ErrNoSchemas)
}
