package kafka

import "errors"

// ErrTopicNotFound is returned when the brokers do not know the
// requested topic.
var ErrTopicNotFound = errors.New("kafka: topic not found")

// IsTopicNotFound reports whether the error indicates an unknown topic.
func IsTopicNotFound(err error) bool {
	return errors.Is(err, ErrTopicNotFound)
}
