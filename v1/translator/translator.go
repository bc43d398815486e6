package translator

import (
	"math"

	"github.com/valyala/fastjson"
)

// conversionErrorDescription marks the generic node returned for input that
// could not be translated at all. Callers detect degradation by inspecting
// the node content; translation itself never fails.
const conversionErrorDescription = "Schema conversion error"

// Translate converts a raw Avro schema into its descriptive schema and a
// synthetic example payload in one call. Both halves degrade independently:
// a schema that cannot be described still yields an (empty) example map.
func Translate(schemaText string) (*Node, map[string]interface{}) {
	return DescribeSchema(schemaText), ExampleMessage(schemaText)
}

// DescribeSchema converts a raw Avro record schema into a descriptive
// object node. Only the top-level record's direct fields are expanded;
// nested records degenerate to bare objects.
//
// The operation is total: malformed input (unparsable text, a non-object
// schema, a field without name or type) produces a generic object node
// whose description states the degradation. It never returns nil and never
// panics.
func DescribeSchema(schemaText string) *Node {
	root, err := fastjson.Parse(schemaText)
	if err != nil || root.Type() != fastjson.TypeObject {
		return conversionErrorNode()
	}

	node := &Node{
		Type:        "object",
		Description: string(root.GetStringBytes("doc")),
		Properties:  map[string]*Node{},
	}

	fields := root.Get("fields")
	if fields == nil {
		// A record without fields is an empty but valid object.
		return node
	}
	if fields.Type() != fastjson.TypeArray {
		return conversionErrorNode()
	}

	for _, field := range fields.GetArray() {
		name := field.GetStringBytes("name")
		fieldType := field.Get("type")
		if name == nil || fieldType == nil {
			// A field missing its name or type poisons the whole
			// conversion, matching the all-or-nothing degradation
			// contract.
			return conversionErrorNode()
		}

		prop := convertType(fieldType)
		prop.Description = string(field.GetStringBytes("doc"))

		if field.Exists("default") {
			prop.Default = decodeValue(field.Get("default"))
		} else {
			node.Required = append(node.Required, string(name))
		}

		node.Properties[string(name)] = prop
	}

	return node
}

// ExampleMessage builds a synthetic example payload for a raw Avro record
// schema. Fields carrying a default contribute the default verbatim —
// including falsy values like 0, false and "" — while fields without one
// get a generated per-type example.
//
// Malformed input yields an empty map, never an error or panic.
func ExampleMessage(schemaText string) map[string]interface{} {
	example := map[string]interface{}{}

	root, err := fastjson.Parse(schemaText)
	if err != nil || root.Type() != fastjson.TypeObject {
		return example
	}

	fields := root.Get("fields")
	if fields == nil || fields.Type() != fastjson.TypeArray {
		return example
	}

	for _, field := range fields.GetArray() {
		name := field.GetStringBytes("name")
		fieldType := field.Get("type")
		if name == nil || fieldType == nil {
			return map[string]interface{}{}
		}

		if field.Exists("default") {
			example[string(name)] = decodeValue(field.Get("default"))
		} else {
			example[string(name)] = exampleValue(fieldType)
		}
	}

	return example
}

func conversionErrorNode() *Node {
	return &Node{Type: "object", Description: conversionErrorDescription}
}

// convertType maps one Avro type node onto a descriptive node.
func convertType(avroType *fastjson.Value) *Node {
	switch avroType.Type() {
	case fastjson.TypeString:
		return primitiveNode(string(avroType.GetStringBytes()))

	case fastjson.TypeArray:
		// Union: the first non-null member wins. Nullability itself is
		// a field-level concern (default handling), not a type-level one.
		for _, member := range avroType.GetArray() {
			if isNullName(member) {
				continue
			}
			return convertType(member)
		}
		return &Node{Type: "null"}

	case fastjson.TypeObject:
		switch string(avroType.GetStringBytes("type")) {
		case "enum":
			return &Node{Type: "string", Enum: symbolList(avroType)}
		case "array":
			items := avroType.Get("items")
			if items == nil {
				return &Node{Type: "array", Items: &Node{Type: "string"}}
			}
			return &Node{Type: "array", Items: convertType(items)}
		case "record":
			// Nested records are not expanded field-by-field.
			return &Node{Type: "object"}
		}

		switch string(avroType.GetStringBytes("logicalType")) {
		case "timestamp-millis", "timestamp-micros":
			return &Node{Type: "string", Format: "date-time"}
		case "date":
			return &Node{Type: "string", Format: "date"}
		}
	}

	// Unrecognized shapes (maps, fixed, unknown logical types, bare
	// wrapped primitives) degrade to a plain string node.
	return &Node{Type: "string"}
}

func primitiveNode(name string) *Node {
	switch name {
	case "string":
		return &Node{Type: "string"}
	case "int":
		return &Node{Type: "integer"}
	case "long":
		return &Node{Type: "integer", Format: "int64"}
	case "float":
		return &Node{Type: "number", Format: "float"}
	case "double":
		return &Node{Type: "number", Format: "double"}
	case "boolean":
		return &Node{Type: "boolean"}
	case "bytes":
		return &Node{Type: "string", ContentEncoding: "base64"}
	case "null":
		return &Node{Type: "null"}
	}
	return &Node{Type: "string"}
}

// exampleValue generates a fixed example literal for one Avro type node.
func exampleValue(avroType *fastjson.Value) interface{} {
	switch avroType.Type() {
	case fastjson.TypeString:
		return primitiveExample(string(avroType.GetStringBytes()))

	case fastjson.TypeArray:
		for _, member := range avroType.GetArray() {
			if isNullName(member) {
				continue
			}
			return exampleValue(member)
		}
		return nil

	case fastjson.TypeObject:
		switch string(avroType.GetStringBytes("type")) {
		case "enum":
			symbols := avroType.GetArray("symbols")
			if len(symbols) > 0 {
				return string(symbols[0].GetStringBytes())
			}
			return "ENUM_VALUE"
		case "array":
			return []interface{}{}
		case "record":
			return map[string]interface{}{}
		}

		switch string(avroType.GetStringBytes("logicalType")) {
		case "timestamp-millis", "timestamp-micros":
			return "2024-01-01T12:00:00Z"
		case "date":
			return "2024-01-01"
		}
	}

	return "example"
}

func primitiveExample(name string) interface{} {
	switch name {
	case "string":
		return "example-string"
	case "int":
		return 42
	case "long":
		return int64(1234567890)
	case "float":
		return 3.14
	case "double":
		return 3.14159
	case "boolean":
		return true
	case "bytes":
		return "base64-encoded-data"
	case "null":
		return nil
	}
	return "example"
}

// isNullName reports whether a union member is the literal "null" type name.
// Complex members (objects, arrays) are never null names.
func isNullName(member *fastjson.Value) bool {
	return member.Type() == fastjson.TypeString && string(member.GetStringBytes()) == "null"
}

func symbolList(enum *fastjson.Value) []string {
	symbols := enum.GetArray("symbols")
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, string(s.GetStringBytes()))
	}
	return out
}

// decodeValue converts an arbitrary fastjson value into plain Go data
// suitable for JSON/YAML marshaling. Integral numbers come back as int64
// so that defaults like 0 keep marshaling as integers.
func decodeValue(v *fastjson.Value) interface{} {
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		m := make(map[string]interface{}, obj.Len())
		obj.Visit(func(key []byte, item *fastjson.Value) {
			m[string(key)] = decodeValue(item)
		})
		return m

	case fastjson.TypeArray:
		items := v.GetArray()
		out := make([]interface{}, 0, len(items))
		for _, item := range items {
			out = append(out, decodeValue(item))
		}
		return out

	case fastjson.TypeString:
		return string(v.GetStringBytes())

	case fastjson.TypeNumber:
		f := v.GetFloat64()
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			return int64(f)
		}
		return f

	case fastjson.TypeTrue:
		return true

	case fastjson.TypeFalse:
		return false
	}

	return nil
}
