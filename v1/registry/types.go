package registry

// SchemaType identifies the serialization format of a registered schema.
type SchemaType string

const (
	SchemaTypeAvro     SchemaType = "AVRO"
	SchemaTypeJSON     SchemaType = "JSON"
	SchemaTypeProtobuf SchemaType = "PROTOBUF"
)

// CompatibilityLevel is a registry compatibility setting, either global
// or per subject.
type CompatibilityLevel string

const (
	CompatibilityBackward           CompatibilityLevel = "BACKWARD"
	CompatibilityBackwardTransitive CompatibilityLevel = "BACKWARD_TRANSITIVE"
	CompatibilityForward            CompatibilityLevel = "FORWARD"
	CompatibilityForwardTransitive  CompatibilityLevel = "FORWARD_TRANSITIVE"
	CompatibilityFull               CompatibilityLevel = "FULL"
	CompatibilityFullTransitive     CompatibilityLevel = "FULL_TRANSITIVE"
	CompatibilityNone               CompatibilityLevel = "NONE"
)

// Reference points at another subject-version that a schema depends on.
type Reference struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Version int    `json:"version"`
}

// Version is one registered version of a subject, as returned by
// GET /subjects/{subject}/versions/{version}.
//
// SchemaType is empty for Avro schemas on older registries; callers that
// need a concrete type should treat empty as AVRO, which is the registry's
// own default.
type Version struct {
	Subject    string      `json:"subject"`
	ID         int         `json:"id"`
	Version    int         `json:"version"`
	SchemaType SchemaType  `json:"schemaType,omitempty"`
	Schema     string      `json:"schema"`
	References []Reference `json:"references,omitempty"`
}

// Type returns the schema type with the registry's implicit default applied.
func (v *Version) Type() SchemaType {
	if v.SchemaType == "" {
		return SchemaTypeAvro
	}
	return v.SchemaType
}

// CompatibilityConfig is the payload of GET /config and GET /config/{subject}.
type CompatibilityConfig struct {
	CompatibilityLevel CompatibilityLevel `json:"compatibilityLevel"`
}
