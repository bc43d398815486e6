// Package kafka provides topic metadata lookup and writer
// construction against a Kafka cluster.
//
// schemawarden documents schema subjects; when a topic name is known,
// this package supplies the broker-side facts about it (partition
// count, replication factor) so generated documentation can include
// them. It is an optional collaborator: the documentation generator
// works without it and simply omits broker metadata.
//
// NewWriter builds a publisher for a single topic from the same
// connection configuration; the notify package uses it for its Kafka
// backend.
//
// Basic Usage:
//
//	client, err := kafka.NewMetadataClient(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//	})
//	if err != nil {
//		return err
//	}
//
//	info, err := client.TopicInfo(ctx, "orders")
//	if kafka.IsTopicNotFound(err) {
//		// topic does not exist on the cluster
//	}
//
// TLS and SASL:
//
// Broker connections support TLS (CA and client certificates) and
// SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) through Config.TLS and
// Config.SASL.
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		kafka.FXModule,
//		// ... other modules
//	)
//
// Include the module only when brokers are configured; consumers
// declare the dependency optional and degrade without it.
//
// Configuration via environment:
//
//	KAFKA_BROKERS=localhost:9092,localhost:9093
//	KAFKA_SASL_ENABLED=true
//	KAFKA_SASL_MECHANISM=SCRAM-SHA-512
package kafka
