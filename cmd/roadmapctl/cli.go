package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/roadmap-aggregate-go/command"
	"github.com/AntonStoeckl/roadmap-aggregate-go/config"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	errNotFound      = errors.New("not found")
	errUnknownOutput = errors.New("unknown output format")
)

// cli carries the global flags and the app built for the running command.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	output     string

	app *app
}

func execute(args []string, stdout, stderr io.Writer) error {
	c := &cli{stdout: stdout, stderr: stderr}

	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()

	if c.app != nil {
		err = errors.Join(err, c.app.close())
	}

	return err
}

func (c *cli) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmapctl",
		Short: "Manage product roadmaps",
		Long: `roadmapctl manages roadmaps made of timeframes, initiatives and items,
plus free-standing roadmap notes.

Storage, logging, retries and planning limits come from a YAML config file
and the ROADMAP_* environment variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&c.output, "output", "o", outputText, "Output format (text, json, yaml)")

	cmd.AddCommand(
		c.createCommand(),
		c.showCommand(),
		c.listCommand(),
		c.updateCommand(),
		c.deleteCommand(),
		c.validateCommand(),
		c.rebalanceCommand(),
		c.normalizeCommand(),
		c.suggestCommand(),
		c.timeframeCommand(),
		c.initiativeCommand(),
		c.itemCommand(),
		c.noteCommand(),
	)

	return cmd
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	switch c.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("%w: %q", errUnknownOutput, c.output)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
		if _, err = cfg.Log.SlogLevel(); err != nil {
			return err
		}
	}

	c.app, err = newApp(cmd.Context(), cfg, c.stderr)

	return err
}

func (c *cli) facade() command.Facade {
	return c.app.facade
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, errNotFound)
}

// printResult returns a function that renders the outcome of a roadmap command.
// An absent roadmap becomes an error.
func (c *cli) printResult(roadmapID string) func(command.Result, error) error {
	return func(result command.Result, err error) error {
		if err != nil {
			return err
		}

		if !result.Found {
			return notFound("roadmap", roadmapID)
		}

		return c.renderResult(result)
	}
}

// optionalString returns a pointer to the flag value if the flag was set.
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, _ := cmd.Flags().GetString(name)

	return &value
}

func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, _ := cmd.Flags().GetInt(name)

	return &value
}

func optionalStrings(cmd *cobra.Command, name string) *[]string {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, _ := cmd.Flags().GetStringSlice(name)

	return &value
}
