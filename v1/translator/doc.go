// Package translator converts Avro wire schemas into descriptive JSON
// Schema nodes and synthetic example payloads for documentation.
//
// The translation is deliberately lossy: it targets human-readable
// documentation (AsyncAPI components, catalogue pages), not wire encoding
// or validation. Unions collapse to their first non-null member, nested
// records flatten to bare objects, and any shape the translator does not
// recognize degrades to a plain string node instead of failing.
//
// Usage:
//
//	schema, example := translator.Translate(latest.Schema)
//
//	// or each half on its own
//	node := translator.DescribeSchema(latest.Schema)
//	payload := translator.ExampleMessage(latest.Schema)
//
// Both entry points are total: they accept arbitrary text, never return an
// error and never panic. Malformed input is signaled through the output
// shape itself — a generic object node carrying a diagnostic description,
// and an empty example map — so callers must inspect content rather than
// test for absence.
//
// Type mapping:
//
//	string   -> {"type": "string"}
//	int      -> {"type": "integer"}
//	long     -> {"type": "integer", "format": "int64"}
//	float    -> {"type": "number", "format": "float"}
//	double   -> {"type": "number", "format": "double"}
//	boolean  -> {"type": "boolean"}
//	bytes    -> {"type": "string", "contentEncoding": "base64"}
//	null     -> {"type": "null"}
//	enum     -> {"type": "string", "enum": [...]}
//	array    -> {"type": "array", "items": ...}
//	record   -> {"type": "object"} (nested; top-level records expand fields)
//
// Logical types timestamp-millis, timestamp-micros and date override their
// base primitive with format-tagged string nodes.
//
// Field-level rule: a field carrying a "default" is optional and its
// example is the default verbatim — including falsy defaults like 0, false
// and "" — while a field without one is required and gets a generated
// example literal.
//
// The package does no I/O and holds no state; all functions are safe for
// concurrent use.
package translator
