package translator

// Node is a descriptive, JSON-Schema-like representation of one schema
// shape. It is built for documentation output, not for wire encoding or
// validation: the translator fills exactly the fields a reader needs to
// understand a payload and leaves the rest empty.
//
// Nodes marshal cleanly to JSON and to YAML (for AsyncAPI components).
type Node struct {
	// Type is the JSON Schema type: object, array, string, integer,
	// number, boolean or null.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format carries a precision or shape hint (int64, float, double,
	// date-time, date).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// ContentEncoding marks binary payloads carried as encoded strings.
	ContentEncoding string `json:"contentEncoding,omitempty" yaml:"contentEncoding,omitempty"`

	// Description is the doc string of the schema or field, when present.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Enum lists the allowed symbols of an enum-backed string node,
	// in declaration order.
	Enum []string `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Items describes the element type of an array node.
	Items *Node `json:"items,omitempty" yaml:"items,omitempty"`

	// Properties maps field names of an object node to their types.
	Properties map[string]*Node `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required lists the names of fields without a default value,
	// in declaration order.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// Default is the field's declared default value, verbatim.
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`
}
