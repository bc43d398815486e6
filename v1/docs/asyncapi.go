package docs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/stackmill/schemawarden/v1/translator"
)

const asyncapiVersion = "3.0.0"

// Wire shapes of the rendered AsyncAPI document. Field order here is
// the order in the emitted YAML.
type asyncapiDocument struct {
	AsyncAPI           string                       `yaml:"asyncapi"`
	Info               asyncapiInfo                 `yaml:"info"`
	DefaultContentType string                       `yaml:"defaultContentType,omitempty"`
	Channels           map[string]asyncapiChannel   `yaml:"channels"`
	Operations         map[string]asyncapiOperation `yaml:"operations"`
	Components         asyncapiComponents           `yaml:"components"`
}

type asyncapiInfo struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

type asyncapiChannel struct {
	Address  string                   `yaml:"address"`
	Bindings *asyncapiChannelBindings `yaml:"bindings,omitempty"`
	Messages map[string]asyncapiRef   `yaml:"messages"`
}

type asyncapiChannelBindings struct {
	Kafka asyncapiKafkaBinding `yaml:"kafka"`
}

type asyncapiKafkaBinding struct {
	Partitions int `yaml:"partitions,omitempty"`
	Replicas   int `yaml:"replicas,omitempty"`
}

type asyncapiOperation struct {
	Action  string      `yaml:"action"`
	Channel asyncapiRef `yaml:"channel"`
	Summary string      `yaml:"summary,omitempty"`
}

type asyncapiRef struct {
	Ref string `yaml:"$ref"`
}

type asyncapiComponents struct {
	Messages map[string]asyncapiMessage `yaml:"messages"`
}

type asyncapiMessage struct {
	Name        string                   `yaml:"name"`
	Title       string                   `yaml:"title,omitempty"`
	ContentType string                   `yaml:"contentType,omitempty"`
	Payload     *translator.Node         `yaml:"payload,omitempty"`
	Examples    []asyncapiMessageExample `yaml:"examples,omitempty"`
}

type asyncapiMessageExample struct {
	Name    string                 `yaml:"name,omitempty"`
	Payload map[string]interface{} `yaml:"payload,omitempty"`
}

// RenderAsyncAPI renders a topic documentation record as an AsyncAPI
// 3.0.0 YAML document: one channel per topic, one message per resolved
// subject with its descriptive schema as payload and the synthetic
// example inlined, and Kafka channel bindings when broker metadata is
// present.
func RenderAsyncAPI(doc *TopicDocumentation) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("topic documentation is required")
	}
	if len(doc.Subjects) == 0 {
		return nil, fmt.Errorf("topic %q: %w", doc.Topic, ErrNoSchemas)
	}

	channel := asyncapiChannel{
		Address:  doc.Topic,
		Messages: map[string]asyncapiRef{},
	}
	if doc.Info != nil {
		channel.Bindings = &asyncapiChannelBindings{
			Kafka: asyncapiKafkaBinding{
				Partitions: doc.Info.Partitions,
				Replicas:   doc.Info.ReplicationFactor,
			},
		}
	}

	messages := map[string]asyncapiMessage{}
	for _, sub := range doc.Subjects {
		msg := asyncapiMessage{
			Name:    sub.Subject,
			Title:   fmt.Sprintf("%s message", sub.Subject),
			Payload: sub.Descriptive,
		}
		if len(sub.Example) > 0 {
			msg.Examples = []asyncapiMessageExample{{Name: "generated", Payload: sub.Example}}
		}
		messages[sub.Subject] = msg
		channel.Messages[sub.Subject] = asyncapiRef{Ref: "#/components/messages/" + sub.Subject}
	}

	spec := asyncapiDocument{
		AsyncAPI: asyncapiVersion,
		Info: asyncapiInfo{
			Title:       fmt.Sprintf("%s API", doc.Topic),
			Version:     "1.0.0",
			Description: fmt.Sprintf("AsyncAPI specification for Kafka topic %s, generated %s", doc.Topic, doc.GeneratedAt),
		},
		DefaultContentType: "application/json",
		Channels:           map[string]asyncapiChannel{doc.Topic: channel},
		Operations: map[string]asyncapiOperation{
			doc.Topic + ".receive": {
				Action:  "receive",
				Channel: asyncapiRef{Ref: "#/channels/" + doc.Topic},
				Summary: fmt.Sprintf("Consume messages from %s", doc.Topic),
			},
		},
		Components: asyncapiComponents{Messages: messages},
	}

	out, err := yaml.Marshal(&spec)
	if err != nil {
		return nil, fmt.Errorf("rendering AsyncAPI document: %w", err)
	}
	return out, nil
}
