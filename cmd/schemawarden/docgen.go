package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackmill/schemawarden/v1/docs"
	"github.com/stackmill/schemawarden/v1/kafka"
)

func newDocgenCommand() *cobra.Command {
	var outPath string

	command := &cobra.Command{
		Use:   "docgen <topic>",
		Short: "generate an AsyncAPI document for a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := args[0]

			client, err := newRegistryClient()
			if err != nil {
				return err
			}

			var metadata docs.TopicMetadata
			if brokers := kafkaBrokers(); len(brokers) > 0 {
				metadataClient, err := kafka.NewMetadataClient(kafkaConfig())
				if err != nil {
					return fmt.Errorf("create kafka metadata client: %w", err)
				}
				metadata = metadataClient
			}

			generator, err := docs.NewGenerator(client, metadata, nil)
			if err != nil {
				return fmt.Errorf("create generator: %w", err)
			}

			doc, err := generator.DocumentTopic(cmd.Context(), topic)
			if err != nil {
				return fmt.Errorf("document topic %s: %w", topic, err)
			}

			rendered, err := docs.RenderAsyncAPI(doc)
			if err != nil {
				return fmt.Errorf("render asyncapi document: %w", err)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, rendered, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
				return nil
			}

			store, err := newArchive()
			if err != nil {
				return err
			}
			key, err := store.Put(cmd.Context(), topic, rendered)
			if err != nil {
				return fmt.Errorf("archive document: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived %s\n", key)
			return nil
		},
	}

	command.Flags().StringVar(&outPath, "out", "", "write the document to a file instead of the archive")
	return command
}
