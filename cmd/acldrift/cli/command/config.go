package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config creates the config command
func Config() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate a configuration file",
		Long: `Generate a YAML configuration file with all available acldrift options.

The generated configuration can be saved as .acldrift.yaml and customized as
needed; every option can also be overridden by a CLI flag.`,
		RunE: runConfig,
	}

	cmd.Flags().StringP("output", "o", "", "output file path (default: stdout)")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	outputFile, _ := cmd.Flags().GetString("output")

	config, err := generateConfig()
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		if err := os.WriteFile(outputFile, []byte(config), 0600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		fmt.Printf("Configuration written to: %s\n", outputFile)
	} else {
		fmt.Print(config)
	}

	return nil
}

func generateConfig() (string, error) {
	config := FileConfig{
		Format:   "table",
		Snapshot: "snapshot.json",
		IgnoreIdentities: []string{
			"NT AUTHORITY\\SYSTEM",
			"BUILTIN\\Administrators",
		},
	}

	yamlData, err := yaml.Marshal(&config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	var result strings.Builder
	result.WriteString(`# Acldrift Permission Audit Configuration
# Save as .acldrift.yaml in the working directory, or pass with --config.

`)
	for _, line := range strings.Split(strings.TrimRight(string(yamlData), "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "format:"):
			result.WriteString(line + ` # Output format: "table" or "json"` + "\n")
		case strings.HasPrefix(line, "quiet:"):
			result.WriteString(line + " # Suppress all non-essential output\n")
		case strings.HasPrefix(line, "verbose:"):
			result.WriteString(line + " # Enable verbose output\n")
		case strings.HasPrefix(line, "snapshot:"):
			result.WriteString(line + " # Live descriptor snapshot used when --snapshot is not given\n")
		case strings.HasPrefix(line, "csv-file:"):
			result.WriteString(line + " # Write the deviation report as CSV to this path\n")
		case strings.HasPrefix(line, "ignore-identities:"):
			result.WriteString(`# Identities whose undeclared live rules are reported as ignored rather
# than drift (glob patterns, matched case-insensitively)
` + line + "\n")
		default:
			result.WriteString(line + "\n")
		}
	}

	return result.String(), nil
}
