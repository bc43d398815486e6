package docs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stackmill/schemawarden/v1/kafka"
	"github.com/stackmill/schemawarden/v1/registry"
	"github.com/stackmill/schemawarden/v1/translator"
)

// Logger is the logging interface used across schemawarden packages.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// TopicMetadata supplies broker-side topic facts. Implemented by
// kafka.MetadataClient; nil means no broker metadata is available.
type TopicMetadata interface {
	TopicInfo(ctx context.Context, topic string) (*kafka.TopicInfo, error)
}

// Generator composes translator output with registry metadata into
// documentation records. It is the only place the translator and the
// registry client meet.
type Generator struct {
	registry registry.Registry
	metadata TopicMetadata
	logger   Logger
}

// NewGenerator creates a documentation generator. The metadata client
// and logger are optional.
func NewGenerator(reg registry.Registry, metadata TopicMetadata, logger Logger) (*Generator, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry client is required")
	}
	return &Generator{registry: reg, metadata: metadata, logger: logger}, nil
}

// DocumentSubject documents one subject from its latest version: raw
// schema, descriptive schema, example payload and effective
// compatibility level. The compatibility lookup falls back to the
// global config when the subject has no override, and is omitted
// entirely if both lookups fail; documentation still proceeds.
func (g *Generator) DocumentSubject(ctx context.Context, subject string) (*SubjectDocumentation, error) {
	version, err := g.registry.GetLatestVersion(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("fetching latest version of %q: %w", subject, err)
	}

	doc := &SubjectDocumentation{
		Subject:     subject,
		Version:     version.Version,
		ID:          version.ID,
		SchemaType:  version.Type(),
		Schema:      version.Schema,
		Descriptive: translator.DescribeSchema(version.Schema),
		Example:     translator.ExampleMessage(version.Schema),
	}

	doc.Compatibility = g.effectiveCompatibility(ctx, subject)

	return doc, nil
}

// effectiveCompatibility resolves the compatibility level a subject is
// actually governed by: its own override, else the global level, else
// empty when neither can be fetched.
func (g *Generator) effectiveCompatibility(ctx context.Context, subject string) registry.CompatibilityLevel {
	cfg, err := g.registry.GetSubjectConfig(ctx, subject)
	if err == nil {
		return cfg.CompatibilityLevel
	}
	if !registry.IsNotFound(err) {
		g.logWarn("subject config lookup failed", err, map[string]interface{}{"subject": subject})
	}

	global, err := g.registry.GetGlobalConfig(ctx)
	if err != nil {
		g.logWarn("global config lookup failed", err, nil)
		return ""
	}
	return global.CompatibilityLevel
}

// candidateSubjects lists the subject names a topic's schemas live
// under by convention: {topic}-value, {topic}-key, then the bare
// topic name.
func candidateSubjects(topic string) []string {
	return []string{topic + "-value", topic + "-key", topic}
}

// DocumentTopic documents a topic by resolving its candidate subjects
// concurrently. Candidates that do not exist are skipped; if none
// exist the call fails with ErrNoSchemas. The result preserves
// candidate order, and the example payload comes from the first
// resolved subject. Broker metadata is attached when a Kafka
// collaborator is configured and knows the topic.
func (g *Generator) DocumentTopic(ctx context.Context, topic string) (*TopicDocumentation, error) {
	candidates := candidateSubjects(topic)
	resolved := make([]*SubjectDocumentation, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, subject := range candidates {
		group.Go(func() error {
			doc, err := g.DocumentSubject(groupCtx, subject)
			if err != nil {
				if registry.IsNotFound(err) {
					g.logDebug("candidate subject absent", nil, map[string]interface{}{"subject": subject})
					return nil
				}
				return err
			}
			resolved[i] = doc
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("documenting topic %q: %w", topic, err)
	}

	doc := &TopicDocumentation{
		Topic:       topic,
		Subjects:    []*SubjectDocumentation{},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, sub := range resolved {
		if sub != nil {
			doc.Subjects = append(doc.Subjects, sub)
		}
	}
	if len(doc.Subjects) == 0 {
		return nil, fmt.Errorf("topic %q: %w", topic, ErrNoSchemas)
	}
	doc.Example = doc.Subjects[0].Example

	if g.metadata != nil {
		info, err := g.metadata.TopicInfo(ctx, topic)
		if err != nil {
			// Broker metadata is decoration; schemas alone make a
			// valid document.
			g.logWarn("topic metadata unavailable", err, map[string]interface{}{"topic": topic})
		} else {
			doc.Info = info
		}
	}

	return doc, nil
}

// TopicInventory groups all active subjects by the topic they belong
// to under the -value/-key naming convention, preserving first-seen
// order.
func (g *Generator) TopicInventory(ctx context.Context) ([]TopicSubjects, error) {
	subjects, err := g.registry.ListSubjects(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}

	index := map[string]int{}
	var topics []TopicSubjects
	for _, subject := range subjects {
		topic := strings.ReplaceAll(subject, "-value", "")
		topic = strings.ReplaceAll(topic, "-key", "")

		i, ok := index[topic]
		if !ok {
			i = len(topics)
			index[topic] = i
			topics = append(topics, TopicSubjects{Topic: topic})
		}
		topics[i].Subjects = append(topics[i].Subjects, subject)
	}

	return topics, nil
}

func (g *Generator) logDebug(msg string, err error, fields map[string]interface{}) {
	if g.logger != nil {
		g.logger.Debug(msg, err, fields)
	}
}

func (g *Generator) logWarn(msg string, err error, fields map[string]interface{}) {
	if g.logger != nil {
		g.logger.Warn(msg, err, fields)
	}
}
