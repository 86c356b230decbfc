package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/verneri/parity/pkg/output"
	"github.com/verneri/parity/pkg/pipeline"
	"github.com/verneri/parity/pkg/runner"
	"github.com/verneri/parity/pkg/shell"
)

// errChecksFailed is returned when at least one declared check failed.
var errChecksFailed = errors.New("checks failed")

var (
	pipelineFile string
	verbose      bool
	noColor      bool

	logger zerolog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&pipelineFile, "file", "", "path to "+pipeline.FileName+" (default: search up from current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentPreRunE = initConfig
}

// initConfig applies PARITY_* environment variables as flag defaults and
// builds the logger. Explicit flags win over the environment.
func initConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix("PARITY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Root().PersistentFlags()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	if !flags.Changed("file") {
		pipelineFile = v.GetString("file")
	}
	if !flags.Changed("verbose") {
		verbose = v.GetBool("verbose")
	}
	if !flags.Changed("no-color") {
		noColor = v.GetBool("no-color")
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    noColor || !output.ColorEnabled(),
	}).Level(level).With().Timestamp().Logger()

	return nil
}

// loadPipeline finds and parses the pipeline file, falling back to the
// built-in container-first pipeline when the repository has none.
func loadPipeline() (*pipeline.Pipeline, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	path, err := pipeline.Find(wd, pipelineFile)
	if err != nil {
		if pipelineFile != "" {
			// An explicit path must exist.
			return nil, err
		}
		logger.Debug().Msg("no pipeline file found, using built-in pipeline")
		return pipeline.Default(), nil
	}

	logger.Debug().Str("path", path).Msg("loading pipeline file")
	return pipeline.Load(path)
}

func newRunner() *runner.Runner {
	return &runner.Runner{
		Shell:   &shell.RealRunner{},
		Printer: output.New(os.Stdout, output.ColorEnabled() && !noColor),
		Logger:  logger,
	}
}
