package docs

import (
	"github.com/stackmill/schemawarden/v1/kafka"
	"github.com/stackmill/schemawarden/v1/registry"
	"github.com/stackmill/schemawarden/v1/translator"
)

// SubjectDocumentation is one subject fully documented: latest version
// metadata, the descriptive schema, a synthetic example payload and
// the effective compatibility level.
type SubjectDocumentation struct {
	Subject       string                      `json:"subject" yaml:"subject"`
	Version       int                         `json:"version" yaml:"version"`
	ID            int                         `json:"id" yaml:"id"`
	SchemaType    registry.SchemaType         `json:"schema_type" yaml:"schema_type"`
	Compatibility registry.CompatibilityLevel `json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
	Schema        string                      `json:"schema" yaml:"schema"`
	Descriptive   *translator.Node            `json:"descriptive_schema" yaml:"descriptive_schema"`
	Example       map[string]interface{}      `json:"example" yaml:"example"`
}

// TopicDocumentation collects everything known about one topic: the
// subjects resolved through naming conventions, broker metadata when a
// Kafka collaborator is configured, and an example payload taken from
// the first resolved subject.
type TopicDocumentation struct {
	Topic       string                  `json:"topic" yaml:"topic"`
	Info        *kafka.TopicInfo        `json:"info,omitempty" yaml:"info,omitempty"`
	Subjects    []*SubjectDocumentation `json:"subjects" yaml:"subjects"`
	Example     map[string]interface{}  `json:"example,omitempty" yaml:"example,omitempty"`
	GeneratedAt string                  `json:"generated_at" yaml:"generated_at"`
}

// TopicSubjects groups the subjects that share a topic prefix under
// the -value/-key naming convention, in first-seen subject order.
type TopicSubjects struct {
	Topic    string   `json:"topic"`
	Subjects []string `json:"subjects"`
}
