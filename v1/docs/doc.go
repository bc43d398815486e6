// Package docs generates schema documentation by composing registry
// metadata with the translator's descriptive schemas and example
// payloads. It is the orchestration boundary where those two pieces
// meet; nothing below it performs any composition.
//
// # Usage
//
//	generator, err := docs.NewGenerator(registryClient, nil, logger)
//	if err != nil {
//	    return err
//	}
//
//	// Document one subject.
//	sub, err := generator.DocumentSubject(ctx, "orders-value")
//
//	// Document a whole topic and render it as AsyncAPI YAML.
//	topic, err := generator.DocumentTopic(ctx, "orders")
//	if err != nil {
//	    return err
//	}
//	spec, err := docs.RenderAsyncAPI(topic)
//
// # Topic resolution
//
// A topic's schemas are found by naming convention: {topic}-value,
// {topic}-key, then the bare topic name, fetched concurrently with
// candidate order preserved in the result. Missing candidates are
// benign; only a topic with no resolvable subject at all fails, with
// ErrNoSchemas.
//
// # Broker metadata
//
// When constructed with a Kafka metadata client the generator attaches
// partition and replication facts to topic documentation and renders
// them as AsyncAPI Kafka channel bindings. Metadata failures degrade
// to a document without broker facts; they never fail generation.
//
// The generator writes nothing. Persisting rendered documents is the
// caller's concern (see the archive package).
package docs
