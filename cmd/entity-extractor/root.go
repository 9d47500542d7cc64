package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"entity-extractor/internal/config"
	"entity-extractor/internal/export"
	"entity-extractor/internal/extract"
	"entity-extractor/internal/logging"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	v          *viper.Viper
	configPath string

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		v:      config.New(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// run executes the command line args and returns the process exit code.
// The error of a failed command is printed once to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "entity-extractor:", err)
		return 1
	}

	return 0
}

func (a *app) rootCmd() *cobra.Command {
	defaults := extract.DefaultOptions()

	root := &cobra.Command{
		Use:   "entity-extractor",
		Short: "Extract an entity/relationship graph from a type model",
		Long: "entity-extractor reads class and enum descriptors from Go packages or a schema file\n" +
			"and infers inherits, references, has_children and enum relationships between them.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+config.FileName+")")
	flags.Bool(config.KeyNamingHeuristics, defaults.UseNamingHeuristics, "infer references from foreign key property names")
	flags.String(config.KeyForeignKeySuffix, defaults.ForeignKeySuffix, "property name suffix marking a foreign key")
	flags.String(config.KeyPrimaryKeyName, defaults.PrimaryKeyName, "primary key property name")
	flags.StringP(config.KeyFormat, "f", string(export.FormatJSON), "output format: "+export.FormatNames())
	flags.StringP(config.KeyOutput, "o", "", "output file (default stdout)")
	flags.String(config.KeyLogLevel, "warn", "log level: debug, info, warn or error")
	flags.String(config.KeyLogFile, "", "log file (default stderr)")
	flags.Bool(config.KeyLogJSON, false, "log in JSON")

	root.AddCommand(
		newModuleCmd(a),
		newNamespaceCmd(a),
		newSchemaCmd(a),
		newDescribeCmd(a),
	)

	return root
}

// setup resolves the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging(), a.stderr)
	if err != nil {
		return err
	}

	a.cfg, a.logger, a.logCloser = cfg, logger, closer

	if cfg.File != "" {
		a.logger.Debug("loaded config", "file", cfg.File)
	}

	return nil
}

// close releases the log file, whether or not the command succeeded.
func (a *app) close() {
	if a.logCloser == nil {
		return
	}

	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintln(a.stderr, "entity-extractor: failed to close log file:", err)
	}

	a.logCloser = nil
}

// write encodes res to the configured output.
func (a *app) write(res *extract.Result) error {
	a.logger.Info("extracted graph",
		"entities", len(res.Entities),
		"relationships", len(res.Relationships),
		"inherits", res.Count(extract.KeyInherits),
		"references", res.Count(extract.KeyReferences),
		"has_children", res.Count(extract.KeyHasChildren),
		"enum", res.Count(extract.KeyEnum),
	)

	return a.withOutput(func(w io.Writer) error {
		return export.Encode(w, res, a.cfg.OutputFormat())
	})
}

// withOutput calls fn with the output file, or stdout when none is set.
func (a *app) withOutput(fn func(w io.Writer) error) (err error) {
	if a.cfg.Output == "" {
		return fn(a.stdout)
	}

	f, err := os.Create(a.cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return fn(f)
}
