package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cliVersion = "1.0.0"

func main() {
	if err := run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	command := newRootCommand()
	parsedArgs := []string{}
	if len(args) > 1 {
		parsedArgs = args[1:]
	}
	command.SetArgs(parsedArgs)
	return command.Execute()
}

func newRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:          "schemawarden",
		Short:        "schema registry integrity and lifecycle administration",
		Version:      cliVersion,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	command.PersistentFlags().String("config", "", "path to schemawarden config file")
	command.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd)
	}

	command.AddCommand(newServeCommand())
	command.AddCommand(newCheckCommand())
	command.AddCommand(newSubjectsCommand())
	command.AddCommand(newPurgeCommand())
	command.AddCommand(newDocgenCommand())
	command.InitDefaultCompletionCmd()

	return command
}

// initConfig wires viper to the optional YAML config file and the
// environment. Environment variables use the registry's conventional
// names (SCHEMA_REGISTRY_URL and friends) via explicit bindings set up
// in config.go; a missing config file is not an error.
func initConfig(cmd *cobra.Command) error {
	configFlags := cmd.Flags()
	if cmd.Root() != nil && cmd.Root().PersistentFlags().Lookup("config") != nil {
		configFlags = cmd.Root().PersistentFlags()
	}
	configPath, err := configFlags.GetString("config")
	if err != nil {
		return fmt.Errorf("read config flag: %w", err)
	}

	viper.Reset()
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindEnvironment()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else if envPath := os.Getenv("SCHEMAWARDEN_CONFIG"); envPath != "" {
		viper.SetConfigFile(envPath)
	} else {
		viper.SetConfigName("schemawarden")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "schemawarden"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var missing viper.ConfigFileNotFoundError
		if !errors.As(err, &missing) {
			var pathErr *os.PathError
			if configPath == "" && errors.As(err, &pathErr) {
				return nil
			}
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}
