package command

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"
	"gopkg.in/yaml.v3"

	"github.com/anchore/go-logger"
	"github.com/anchore/go-logger/adapter/logrus"

	"github.com/acldrift/acldrift/audit"
	"github.com/acldrift/acldrift/event"
	"github.com/acldrift/acldrift/internal/bus"
	"github.com/acldrift/acldrift/internal/log"
)

const (
	formatJSON  = "json"
	formatTable = "table"

	defaultConfigFile = ".acldrift.yaml"
)

// GlobalConfig holds configuration that applies to all commands
type GlobalConfig struct {
	ConfigFile   string
	OutputFormat string
	OutputFile   string
	Quiet        bool
	Verbose      bool
}

// GetGlobalConfig extracts global configuration from cobra command
func GetGlobalConfig(cmd *cobra.Command) *GlobalConfig {
	configFile, _ := cmd.Flags().GetString("config")
	outputFormat, _ := cmd.Flags().GetString("output")
	outputFile, _ := cmd.Flags().GetString("output-file")
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return &GlobalConfig{
		ConfigFile:   configFile,
		OutputFormat: outputFormat,
		OutputFile:   outputFile,
		Quiet:        quiet,
		Verbose:      verbose,
	}
}

// SetupLogging configures logging based on verbose flag
func SetupLogging(verbose bool) {
	var logLevel logger.Level
	if verbose {
		logLevel = logger.DebugLevel
	} else {
		logLevel = logger.WarnLevel
	}

	cfg := logrus.Config{
		EnableConsole: true,
		Level:         logLevel,
	}

	l, _ := logrus.New(cfg)
	log.Set(l)
}

var (
	busSubscription *partybus.Subscription
	busDrained      chan struct{}
)

// SetupBus wires the event bus: rendered reports published by the output
// layer reach stdout, warnings and notices from the audit engine (skipped
// rows, unreachable resources) reach stderr unless quiet.
func SetupBus(quiet bool) {
	b := partybus.NewBus()
	bus.Set(b)
	busSubscription = b.Subscribe()
	busDrained = make(chan struct{})
	go func() {
		defer close(busDrained)
		for e := range busSubscription.Events() {
			switch e.Type {
			case event.CLIReport:
				fmt.Print(e.Value)
			case event.CLIWarning:
				if !quiet {
					fmt.Fprintf(os.Stderr, "%s %v\n", color.Yellow.Sprint("warning:"), e.Value)
				}
			case event.CLINotification:
				if !quiet {
					fmt.Fprintln(os.Stderr, e.Value)
				}
			}
		}
	}()
}

// TeardownBus unsubscribes and blocks until every queued event has been
// presented. Must run before the process exits, or trailing output is lost.
func TeardownBus() {
	if busSubscription == nil {
		return
	}
	_ = busSubscription.Unsubscribe()
	<-busDrained
	busSubscription = nil
}

// FileConfig is the YAML configuration file shape.
type FileConfig struct {
	Format           string   `yaml:"format"`
	Quiet            bool     `yaml:"quiet"`
	Verbose          bool     `yaml:"verbose"`
	Snapshot         string   `yaml:"snapshot"`
	CSVFile          string   `yaml:"csv-file"`
	IgnoreIdentities []string `yaml:"ignore-identities"`
}

// LoadFileConfig reads the configuration file. An explicit path must exist;
// otherwise .acldrift.yaml in the working directory is used when present, and
// an empty configuration when not.
func LoadFileConfig(path string) (*FileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if explicit {
		bus.Notify(fmt.Sprintf("using config file: %s", path))
	} else {
		log.Debugf("config file: %s", path)
	}
	return &cfg, nil
}

// LoadPolicyFromConfig builds the audit policy from the configuration file.
func LoadPolicyFromConfig(global *GlobalConfig) (audit.Policy, *FileConfig, error) {
	cfg, err := LoadFileConfig(global.ConfigFile)
	if err != nil {
		return audit.Policy{}, nil, err
	}

	if len(cfg.IgnoreIdentities) == 0 {
		return audit.DefaultPolicy(), cfg, nil
	}
	policy, err := audit.NewPolicy(cfg.IgnoreIdentities...)
	if err != nil {
		return audit.Policy{}, nil, fmt.Errorf("invalid ignore-identities pattern: %w", err)
	}
	return policy, cfg, nil
}

// HandleError handles command errors consistently
func HandleError(err error, quiet bool) {
	if err != nil && !quiet {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
