// cmd/wampdoctor/main.go - entry point of the WAMP doctor.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/windowsadmins/wampdoctor/pkg/config"
	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/utils"
)

// Process exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitAborted = 2
)

// errAborted is returned by a command whose workflow stopped at a
// precondition. The transcript already explains why.
var errAborted = errors.New("workflow aborted")

var (
	flagConfig  string
	flagLocale  string
	flagReport  string
	flagVerbose int

	cfg *config.Configuration
	tr  *i18n.Translator
)

func main() {
	root := newRootCmd()
	root.SetArgs(utils.CommandLineArgs())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()

	code := exitOK
	switch {
	case err == nil:
	case errors.Is(err, errAborted):
		code = exitAborted
	default:
		logging.Error("wampdoctor failed", "error", err)
		fmt.Fprintf(os.Stderr, "wampdoctor: %v\n", err)
		code = exitError
	}
	logging.CloseLogger()
	os.Exit(code)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "wampdoctor",
		Short:             "Diagnose and repair a local WAMP installation",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runUI,
	}

	addPersistentFlags(root.PersistentFlags())
	root.AddCommand(
		newUICmd(),
		newScanCmd(),
		newFixCmd(),
		newPortsCmd(),
		newShowConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func addPersistentFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "configuration file (default "+config.ConfigPath+" or $"+config.EnvConfigPath+")")
	fs.StringVar(&flagLocale, "locale", "", "message language, e.g. en, tr, de")
	fs.StringVar(&flagReport, "report", "", "write the run transcript to this file (.json, .yaml, .pdf or text)")
	fs.CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (-v, -vv, -vvv)")
}

// setup loads the configuration, starts logging and picks the locale.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	if err := initLogging(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "wampdoctor: logging disabled: %v\n", err)
	}
	logging.Info("Configuration loaded", "source", cfg.Source)

	catalog, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("loading locale tables: %w", err)
	}
	locale := catalog.Detect(cfg.Locale)
	if flagLocale != "" {
		if !catalog.Has(flagLocale) {
			return fmt.Errorf("unknown locale %q, available: %v", flagLocale, catalog.Codes())
		}
		locale = flagLocale
	}
	tr, err = i18n.NewTranslator(catalog, locale)
	if err != nil {
		return err
	}
	logging.Debug("Locale selected", "locale", locale)
	return nil
}

// initLogging writes to the configured directory, falling back to the
// temp directory when it is not writable. Headless commands mirror the log
// to stderr when -v is given.
func initLogging(cmd *cobra.Command) error {
	level := logging.ParseLevel(cfg.LogLevel)
	if flagVerbose > 0 {
		level = logging.LevelFromVerbosity(flagVerbose)
	}
	lc := logging.LoggerConfig{
		BaseDir:    cfg.LogDir,
		Component:  "wampdoctor",
		Level:      level,
		Retention:  logging.RetentionPolicy{KeepRuns: cfg.LogKeepRuns, MaxAgeDays: cfg.LogMaxAgeDays},
		EnableJSON: true,
		EnableYAML: true,
	}
	if flagVerbose > 0 && !isUICommand(cmd) {
		lc.Console = os.Stderr
		lc.ConsoleColor = isatty.IsTerminal(os.Stderr.Fd())
	}

	err := logging.InitWithConfig(lc)
	if err == nil {
		return nil
	}
	lc.BaseDir = filepath.Join(os.TempDir(), "WampDoctor", "logs")
	if fallbackErr := logging.InitWithConfig(lc); fallbackErr != nil {
		return errors.Join(err, fallbackErr)
	}
	logging.Warn("Log directory not writable, using temp directory", "configured", cfg.LogDir, "error", err)
	return nil
}

func isUICommand(cmd *cobra.Command) bool {
	return cmd.Name() == "ui" || !cmd.HasParent()
}
