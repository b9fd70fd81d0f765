package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/modorder/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments, using MODORDER_* environment
// variables as flag defaults. It returns a populated app.Config, a boolean
// indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	envDefaults, err := app.ConfigFromEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment configuration: %v", err)}
	}

	flagSet := flag.NewFlagSet("modorder", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
modorder - dependency-ordered discovery of import modules.

Usage:
  modorder [options] [MODULES_PATH]

Arguments:
  MODULES_PATH
    Path to a directory containing .hcl module definition files.

Options:
`)
		flagSet.PrintDefaults()
	}

	modulesFlag := flagSet.String("modules", envDefaults.ModulesPath, "Path to the module definitions directory.")
	mFlag := flagSet.String("m", "", "Path to the module definitions directory (shorthand).")
	dbFlag := flagSet.String("db", envDefaults.DBPath, "Path to the SQLite audit database. Empty disables persistence.")
	queryPortFlag := flagSet.Int("query-port", envDefaults.QueryPort, "Port for the HTTP query server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", envDefaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envDefaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("scan-workers", envDefaults.ScanWorkers, "Number of concurrent definition-file parsers.")
	failFastFlag := flagSet.Bool("fail-fast", envDefaults.FailFast, "Abort startup on any validation finding instead of starting degraded.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	} else if *modulesFlag != "" {
		path = *modulesFlag
	}
	slog.Debug("Modules path determined.", "path", path)

	if path == "" {
		slog.Debug("No modules path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ModulesPath: path,
		DBPath:      *dbFlag,
		QueryPort:   *queryPortFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		ScanWorkers: *workersFlag,
		FailFast:    *failFastFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
