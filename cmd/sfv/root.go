package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forcebit/structured-fields-rfc9651-go/pkg/config"
	"github.com/forcebit/structured-fields-rfc9651-go/pkg/httpfield"
	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"
)

// app holds state shared by every subcommand.
type app struct {
	cfgFile   string
	logLevel  string
	unlimited bool

	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	root := &cobra.Command{
		Use:   "sfv",
		Short: "Parse and serialize HTTP structured field values",
		Long: `sfv parses and serializes HTTP structured field values (RFC 9651).

Values are printed in the JSON form used by the httpwg structured-field-tests
suite, which the serialize command also accepts as input.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().BoolVar(&a.unlimited, "unlimited", false, "disable parser limits")

	root.AddCommand(
		newParseCmd(a),
		newSerializeCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and configures the logger.
// Flags take precedence over the file and the environment.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadConfig(a.cfgFile)
	} else {
		a.cfg, err = config.FromEnv()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	if a.unlimited {
		a.cfg.Limits.Unlimited = true
	}
	if err := config.Validate(a.cfg); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())
	if a.cfg.Log.Format == "json" {
		a.log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	a.log.WithFields(logrus.Fields{
		"config":    a.cfgFile,
		"unlimited": a.cfg.Limits.Unlimited,
	}).Debug("configuration loaded")
	return nil
}

// limits returns the parser limits selected by configuration and flags.
func (a *app) limits() sfv.Limits {
	return a.cfg.ParserLimits()
}

// addTypeFlag registers --type on cmd and returns a getter for its value.
func addTypeFlag(cmd *cobra.Command, def string) func() (sfv.FieldType, error) {
	name := cmd.Flags().StringP("type", "t", def, "field type: list, dictionary, item")
	return func() (sfv.FieldType, error) {
		return sfv.ParseFieldType(*name)
	}
}

// readValue returns the single argument, or the field lines on r combined
// as an HTTP intermediary would.
func readValue(args []string, r io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\r\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return httpfield.Combine(lines)
}
