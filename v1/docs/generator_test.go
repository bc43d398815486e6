package docs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/stackmill/schemawarden/v1/kafka"
	"github.com/stackmill/schemawarden/v1/registry"
)

const orderSchema = `{
	"type": "record",
	"name": "Order",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "amount", "type": "double", "default": 9.99}
	]
}`

const keySchema = `{
	"type": "record",
	"name": "OrderKey",
	"fields": [{"name": "id", "type": "string"}]
}`

// fakeRegistry serves latest-version and config lookups for a fixed
// subject set, in insertion order.
type fakeRegistry struct {
	subjects      []struct{ name, schema string }
	subjectLevels map[string]string
	globalLevel   string
}

func (f *fakeRegistry) add(name, schema string) *fakeRegistry {
	f.subjects = append(f.subjects, struct{ name, schema string }{name, schema})
	return f
}

func (f *fakeRegistry) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/subjects":
			names := []string{}
			for _, s := range f.subjects {
				names = append(names, s.name)
			}
			json.NewEncoder(w).Encode(names)

		case path == "/config":
			level := f.globalLevel
			if level == "" {
				level = "BACKWARD"
			}
			json.NewEncoder(w).Encode(map[string]string{"compatibilityLevel": level})

		case strings.HasPrefix(path, "/config/"):
			subject := strings.TrimPrefix(path, "/config/")
			level, ok := f.subjectLevels[subject]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error_code":40408,"message":"no override"}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"compatibilityLevel": level})

		case strings.HasSuffix(path, "/versions/latest"):
			name := strings.TrimSuffix(strings.TrimPrefix(path, "/subjects/"), "/versions/latest")
			for _, s := range f.subjects {
				if s.name == name {
					json.NewEncoder(w).Encode(map[string]interface{}{
						"subject": s.name, "id": 7, "version": 2, "schema": s.schema,
					})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error_code":40401,"message":"Subject not found."}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

type stubMetadata struct {
	info *kafka.TopicInfo
	err  error
}

func (s *stubMetadata) TopicInfo(ctx context.Context, topic string) (*kafka.TopicInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func newTestGenerator(t *testing.T, fake *fakeRegistry, metadata TopicMetadata) *Generator {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client, err := registry.NewClient(registry.Config{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	generator, err := NewGenerator(client, metadata, nil)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	return generator
}

func TestDocumentSubject(t *testing.T) {
	fake := (&fakeRegistry{subjectLevels: map[string]string{"orders-value": "FULL"}}).add("orders-value", orderSchema)
	generator := newTestGenerator(t, fake, nil)

	doc, err := generator.DocumentSubject(context.Background(), "orders-value")
	if err != nil {
		t.Fatalf("DocumentSubject failed: %v", err)
	}

	if doc.Version != 2 || doc.ID != 7 {
		t.Errorf("version/id = %d/%d, want 2/7", doc.Version, doc.ID)
	}
	if doc.SchemaType != registry.SchemaTypeAvro {
		t.Errorf("schema type = %s, want AVRO", doc.SchemaType)
	}
	if doc.Compatibility != registry.CompatibilityFull {
		t.Errorf("compatibility = %s, want FULL", doc.Compatibility)
	}
	if doc.Descriptive == nil || doc.Descriptive.Properties["id"] == nil {
		t.Fatalf("descriptive schema missing id property: %+v", doc.Descriptive)
	}
	if got := doc.Example["id"]; got != "example-string" {
		t.Errorf("example id = %v, want example-string", got)
	}
	if got := doc.Example["amount"]; got != 9.99 {
		t.Errorf("example amount = %v, want default 9.99", got)
	}
}

func TestDocumentSubjectCompatibilityFallsBackToGlobal(t *testing.T) {
	fake := (&fakeRegistry{globalLevel: "FORWARD"}).add("orders-value", orderSchema)
	generator := newTestGenerator(t, fake, nil)

	doc, err := generator.DocumentSubject(context.Background(), "orders-value")
	if err != nil {
		t.Fatalf("DocumentSubject failed: %v", err)
	}
	if doc.Compatibility != registry.CompatibilityForward {
		t.Errorf("compatibility = %s, want global FORWARD", doc.Compatibility)
	}
}

func TestDocumentSubjectMissing(t *testing.T) {
	generator := newTestGenerator(t, &fakeRegistry{}, nil)

	_, err := generator.DocumentSubject(context.Background(), "nope-value")
	if !registry.IsNotFound(err) {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestDocumentTopicPreservesCandidateOrder(t *testing.T) {
	// orders-key is absent: the result must be [orders-value, orders]
	// regardless of fetch completion order.
	fake := (&fakeRegistry{}).add("orders", keySchema).add("orders-value", orderSchema)
	generator := newTestGenerator(t, fake, nil)

	doc, err := generator.DocumentTopic(context.Background(), "orders")
	if err != nil {
		t.Fatalf("DocumentTopic failed: %v", err)
	}

	if len(doc.Subjects) != 2 {
		t.Fatalf("subjects = %d, want 2", len(doc.Subjects))
	}
	if doc.Subjects[0].Subject != "orders-value" || doc.Subjects[1].Subject != "orders" {
		t.Errorf("order = [%s %s], want [orders-value orders]", doc.Subjects[0].Subject, doc.Subjects[1].Subject)
	}
	if got := doc.Example["amount"]; got != 9.99 {
		t.Errorf("topic example should come from orders-value, got %v", doc.Example)
	}
	if doc.GeneratedAt == "" {
		t.Error("expected generation timestamp")
	}
}

func TestDocumentTopicNoSchemas(t *testing.T) {
	generator := newTestGenerator(t, &fakeRegistry{}, nil)

	_, err := generator.DocumentTopic(context.Background(), "ghost")
	if !IsNoSchemas(err) {
		t.Fatalf("err = %v, want ErrNoSchemas", err)
	}
}

func TestDocumentTopicAttachesBrokerMetadata(t *testing.T) {
	fake := (&fakeRegistry{}).add("orders-value", orderSchema)
	metadata := &stubMetadata{info: &kafka.TopicInfo{Name: "orders", Partitions: 6, ReplicationFactor: 3}}
	generator := newTestGenerator(t, fake, metadata)

	doc, err := generator.DocumentTopic(context.Background(), "orders")
	if err != nil {
		t.Fatalf("DocumentTopic failed: %v", err)
	}
	if doc.Info == nil || doc.Info.Partitions != 6 {
		t.Errorf("info = %+v", doc.Info)
	}
}

func TestDocumentTopicMetadataFailureIsBenign(t *testing.T) {
	fake := (&fakeRegistry{}).add("orders-value", orderSchema)
	metadata := &stubMetadata{err: errors.New("brokers unreachable")}
	generator := newTestGenerator(t, fake, metadata)

	doc, err := generator.DocumentTopic(context.Background(), "orders")
	if err != nil {
		t.Fatalf("DocumentTopic failed: %v", err)
	}
	if doc.Info != nil {
		t.Errorf("info = %+v, want nil", doc.Info)
	}
}

func TestTopicInventory(t *testing.T) {
	fake := (&fakeRegistry{}).
		add("orders-value", orderSchema).
		add("orders-key", keySchema).
		add("users-value", orderSchema)
	generator := newTestGenerator(t, fake, nil)

	topics, err := generator.TopicInventory(context.Background())
	if err != nil {
		t.Fatalf("TopicInventory failed: %v", err)
	}

	if len(topics) != 2 {
		t.Fatalf("topics = %+v, want 2 groups", topics)
	}
	if topics[0].Topic != "orders" || len(topics[0].Subjects) != 2 {
		t.Errorf("first group = %+v", topics[0])
	}
	if topics[1].Topic != "users" || topics[1].Subjects[0] != "users-value" {
		t.Errorf("second group = %+v", topics[1])
	}
}

func TestRenderAsyncAPI(t *testing.T) {
	fake := (&fakeRegistry{}).add("orders-value", orderSchema)
	metadata := &stubMetadata{info: &kafka.TopicInfo{Name: "orders", Partitions: 3, ReplicationFactor: 2}}
	generator := newTestGenerator(t, fake, metadata)

	doc, err := generator.DocumentTopic(context.Background(), "orders")
	if err != nil {
		t.Fatalf("DocumentTopic failed: %v", err)
	}

	out, err := RenderAsyncAPI(doc)
	if err != nil {
		t.Fatalf("RenderAsyncAPI failed: %v", err)
	}

	var rendered map[string]interface{}
	if err := yaml.Unmarshal(out, &rendered); err != nil {
		t.Fatalf("rendered document is not valid YAML: %v", err)
	}

	if rendered["asyncapi"] != "3.0.0" {
		t.Errorf("asyncapi = %v", rendered["asyncapi"])
	}

	channels := rendered["channels"].(map[string]interface{})
	channel := channels["orders"].(map[string]interface{})
	if channel["address"] != "orders" {
		t.Errorf("channel address = %v", channel["address"])
	}

	bindings := channel["bindings"].(map[string]interface{})
	kafkaBinding := bindings["kafka"].(map[string]interface{})
	if kafkaBinding["partitions"] != 3 || kafkaBinding["replicas"] != 2 {
		t.Errorf("kafka bindings = %v", kafkaBinding)
	}

	components := rendered["components"].(map[string]interface{})
	messages := components["messages"].(map[string]interface{})
	msg := messages["orders-value"].(map[string]interface{})
	payload := msg["payload"].(map[string]interface{})
	if payload["type"] != "object" {
		t.Errorf("payload type = %v", payload["type"])
	}

	examples := msg["examples"].([]interface{})
	example := examples[0].(map[string]interface{})["payload"].(map[string]interface{})
	if example["amount"] != 9.99 {
		t.Errorf("example amount = %v", example["amount"])
	}
}

func TestRenderAsyncAPIRequiresSubjects(t *testing.T) {
	if _, err := RenderAsyncAPI(nil); err == nil {
		t.Fatal("expected error for nil documentation")
	}
	if _, err := RenderAsyncAPI(&TopicDocumentation{Topic: "orders"}); !IsNoSchemas(err) {
		t.Fatalf("err = %v, want ErrNoSchemas", err)
	}
}

func TestNewGeneratorRequiresRegistry(t *testing.T) {
	if _, err := NewGenerator(nil, nil, nil); err == nil {
		t.Fatal("expected error for nil registry")
	}
}
