package translator

import (
	"reflect"
	"testing"
)

func fieldSchema(fieldJSON string) string {
	return `{"type":"record","name":"Test","fields":[` + fieldJSON + `]}`
}

func TestPrimitiveMapping(t *testing.T) {
	tests := []struct {
		avroType     string
		wantType     string
		wantFormat   string
		wantEncoding string
		wantExample  interface{}
	}{
		{"string", "string", "", "", "example-string"},
		{"int", "integer", "", "", 42},
		{"long", "integer", "int64", "", int64(1234567890)},
		{"float", "number", "float", "", 3.14},
		{"double", "number", "double", "", 3.14159},
		{"boolean", "boolean", "", "", true},
		{"bytes", "string", "", "base64", "base64-encoded-data"},
		{"null", "null", "", "", nil},
		{"weird-unknown", "string", "", "", "example"},
	}

	for _, tt := range tests {
		t.Run(tt.avroType, func(t *testing.T) {
			schema := fieldSchema(`{"name":"f","type":"` + tt.avroType + `"}`)

			node := DescribeSchema(schema)
			prop := node.Properties["f"]
			if prop == nil {
				t.Fatalf("missing property for type %q", tt.avroType)
			}
			if prop.Type != tt.wantType {
				t.Errorf("type = %q, want %q", prop.Type, tt.wantType)
			}
			if prop.Format != tt.wantFormat {
				t.Errorf("format = %q, want %q", prop.Format, tt.wantFormat)
			}
			if prop.ContentEncoding != tt.wantEncoding {
				t.Errorf("contentEncoding = %q, want %q", prop.ContentEncoding, tt.wantEncoding)
			}

			example := ExampleMessage(schema)
			if !reflect.DeepEqual(example["f"], tt.wantExample) {
				t.Errorf("example = %#v, want %#v", example["f"], tt.wantExample)
			}
		})
	}
}

func TestUnionTakesFirstNonNull(t *testing.T) {
	plain := fieldSchema(`{"name":"f","type":"string"}`)
	union := fieldSchema(`{"name":"f","type":["null","string"]}`)

	plainNode := DescribeSchema(plain).Properties["f"]
	unionNode := DescribeSchema(union).Properties["f"]
	if plainNode.Type != unionNode.Type {
		t.Errorf("union node type %q differs from plain %q", unionNode.Type, plainNode.Type)
	}

	if got := ExampleMessage(union)["f"]; got != "example-string" {
		t.Errorf("union example = %#v, want example-string", got)
	}
}

func TestUnionOfOnlyNull(t *testing.T) {
	schema := fieldSchema(`{"name":"f","type":["null"]}`)

	node := DescribeSchema(schema).Properties["f"]
	if node.Type != "null" {
		t.Errorf("only-null union type = %q, want null", node.Type)
	}

	example := ExampleMessage(schema)
	if v, ok := example["f"]; !ok || v != nil {
		t.Errorf("only-null union example = %#v, want nil (present)", v)
	}
}

func TestUnionSkipsNullBeforeComplexMember(t *testing.T) {
	schema := fieldSchema(`{"name":"f","type":["null",{"type":"array","items":"int"}]}`)

	node := DescribeSchema(schema).Properties["f"]
	if node.Type != "array" || node.Items == nil || node.Items.Type != "integer" {
		t.Errorf("unexpected union node %+v", node)
	}
}

func TestRequiredFollowsDefaults(t *testing.T) {
	schema := `{"type":"record","name":"Test","fields":[
		{"name":"id","type":"string"},
		{"name":"count","type":"int","default":0},
		{"name":"active","type":"boolean","default":false},
		{"name":"note","type":"string","default":""},
		{"name":"created","type":"long"}
	]}`

	node := DescribeSchema(schema)
	want := []string{"id", "created"}
	if !reflect.DeepEqual(node.Required, want) {
		t.Errorf("required = %v, want %v", node.Required, want)
	}

	if node.Properties["count"].Default != int64(0) {
		t.Errorf("count default = %#v, want int64(0)", node.Properties["count"].Default)
	}
}

func TestDefaultsBypassExampleGeneration(t *testing.T) {
	schema := `{"type":"record","name":"Test","fields":[
		{"name":"count","type":"int","default":0},
		{"name":"active","type":"boolean","default":false},
		{"name":"note","type":"string","default":""},
		{"name":"tag","type":["null","string"],"default":null},
		{"name":"generated","type":"int"}
	]}`

	example := ExampleMessage(schema)

	if got := example["count"]; !reflect.DeepEqual(got, int64(0)) {
		t.Errorf("count = %#v, want 0 verbatim", got)
	}
	if got := example["active"]; got != false {
		t.Errorf("active = %#v, want false verbatim", got)
	}
	if got := example["note"]; got != "" {
		t.Errorf("note = %#v, want empty string verbatim", got)
	}
	if got, ok := example["tag"]; !ok || got != nil {
		t.Errorf("tag = %#v, want nil verbatim", got)
	}
	if got := example["generated"]; got != 42 {
		t.Errorf("generated = %#v, want generated 42", got)
	}
}

func TestEnum(t *testing.T) {
	schema := fieldSchema(`{"name":"status","type":{"type":"enum","name":"Status","symbols":["ACTIVE","INACTIVE"]}}`)

	node := DescribeSchema(schema).Properties["status"]
	if node.Type != "string" {
		t.Errorf("enum node type = %q, want string", node.Type)
	}
	if !reflect.DeepEqual(node.Enum, []string{"ACTIVE", "INACTIVE"}) {
		t.Errorf("enum symbols = %v", node.Enum)
	}

	if got := ExampleMessage(schema)["status"]; got != "ACTIVE" {
		t.Errorf("enum example = %#v, want first symbol", got)
	}
}

func TestEnumWithoutSymbols(t *testing.T) {
	schema := fieldSchema(`{"name":"status","type":{"type":"enum","name":"Status","symbols":[]}}`)

	if got := ExampleMessage(schema)["status"]; got != "ENUM_VALUE" {
		t.Errorf("empty enum example = %#v, want ENUM_VALUE placeholder", got)
	}
}

func TestArray(t *testing.T) {
	schema := fieldSchema(`{"name":"items","type":{"type":"array","items":"long"}}`)

	node := DescribeSchema(schema).Properties["items"]
	if node.Type != "array" {
		t.Fatalf("array node type = %q", node.Type)
	}
	if node.Items == nil || node.Items.Type != "integer" || node.Items.Format != "int64" {
		t.Errorf("array items = %+v", node.Items)
	}

	got := ExampleMessage(schema)["items"]
	if !reflect.DeepEqual(got, []interface{}{}) {
		t.Errorf("array example = %#v, want empty sequence", got)
	}
}

func TestNestedRecordDegeneratesToObject(t *testing.T) {
	schema := fieldSchema(`{"name":"address","type":{"type":"record","name":"Address","fields":[{"name":"city","type":"string"}]}}`)

	node := DescribeSchema(schema).Properties["address"]
	if node.Type != "object" {
		t.Errorf("nested record type = %q, want object", node.Type)
	}
	if len(node.Properties) != 0 {
		t.Errorf("nested record must not expand fields, got %v", node.Properties)
	}

	got := ExampleMessage(schema)["address"]
	if !reflect.DeepEqual(got, map[string]interface{}{}) {
		t.Errorf("nested record example = %#v, want empty object", got)
	}
}

func TestLogicalTypes(t *testing.T) {
	tests := []struct {
		name        string
		typeJSON    string
		wantFormat  string
		wantExample interface{}
	}{
		{"timestamp-millis", `{"type":"long","logicalType":"timestamp-millis"}`, "date-time", "2024-01-01T12:00:00Z"},
		{"timestamp-micros", `{"type":"long","logicalType":"timestamp-micros"}`, "date-time", "2024-01-01T12:00:00Z"},
		{"date", `{"type":"int","logicalType":"date"}`, "date", "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := fieldSchema(`{"name":"ts","type":` + tt.typeJSON + `}`)

			node := DescribeSchema(schema).Properties["ts"]
			if node.Type != "string" || node.Format != tt.wantFormat {
				t.Errorf("node = %+v, want string/%s", node, tt.wantFormat)
			}

			if got := ExampleMessage(schema)["ts"]; got != tt.wantExample {
				t.Errorf("example = %#v, want %#v", got, tt.wantExample)
			}
		})
	}
}

func TestUnrecognizedLogicalTypeFallsBack(t *testing.T) {
	schema := fieldSchema(`{"name":"t","type":{"type":"long","logicalType":"time-millis"}}`)

	node := DescribeSchema(schema).Properties["t"]
	if node.Type != "string" || node.Format != "" {
		t.Errorf("unrecognized logical type node = %+v, want plain string", node)
	}

	if got := ExampleMessage(schema)["t"]; got != "example" {
		t.Errorf("example = %#v, want generic placeholder", got)
	}
}

func TestMalformedInput(t *testing.T) {
	for _, input := range []string{"not json", "", "[1,2,3]", `"just a string"`} {
		node := DescribeSchema(input)
		if node == nil {
			t.Fatalf("DescribeSchema(%q) returned nil", input)
		}
		if node.Type != "object" || node.Description == "" {
			t.Errorf("DescribeSchema(%q) = %+v, want generic object with diagnostic description", input, node)
		}

		example := ExampleMessage(input)
		if example == nil || len(example) != 0 {
			t.Errorf("ExampleMessage(%q) = %#v, want empty map", input, example)
		}
	}
}

func TestFieldWithoutNamePoisonsConversion(t *testing.T) {
	schema := `{"type":"record","name":"Test","fields":[{"type":"string"}]}`

	node := DescribeSchema(schema)
	if node.Description != conversionErrorDescription {
		t.Errorf("expected degradation node, got %+v", node)
	}

	if example := ExampleMessage(schema); len(example) != 0 {
		t.Errorf("expected empty example, got %#v", example)
	}
}

func TestSchemaDocCarriedThrough(t *testing.T) {
	schema := `{"type":"record","name":"Order","doc":"An order event","fields":[
		{"name":"id","type":"string","doc":"Order identifier"}
	]}`

	node := DescribeSchema(schema)
	if node.Description != "An order event" {
		t.Errorf("schema description = %q", node.Description)
	}
	if node.Properties["id"].Description != "Order identifier" {
		t.Errorf("field description = %q", node.Properties["id"].Description)
	}
}

func TestTranslateReturnsBothHalves(t *testing.T) {
	schema := `{"type":"record","name":"Order","fields":[
		{"name":"id","type":"string"},
		{"name":"amount","type":"double","default":9.99}
	]}`

	node, example := Translate(schema)
	if node.Properties["amount"].Type != "number" {
		t.Errorf("node half wrong: %+v", node.Properties["amount"])
	}
	if got := example["amount"]; got != 9.99 {
		t.Errorf("example half wrong: %#v", got)
	}
	if got := example["id"]; got != "example-string" {
		t.Errorf("generated example wrong: %#v", got)
	}
}
