package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"github.com/vk/visiongo/internal/app"
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

// paramFlag accumulates repeated -param k=v flags into a map.
type paramFlag map[string]string

func (p paramFlag) String() string {
	pairs := make([]string, 0, len(p))
	for k, v := range p {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (p paramFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("invalid param %q: want key=value", s)
	}
	p[k] = v
	return nil
}

// Parse processes environment defaults and command-line arguments. It
// returns a populated app.Config, a boolean indicating the program should
// exit cleanly, or an ExitError.
func Parse(ctx context.Context, args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	// Environment variables provide the defaults the flags then override.
	var envCfg app.Config
	if err := envconfig.Process(ctx, &envCfg); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("visiongo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
VisionGo - capability loader and binding layer for the native vision toolkit.

Usage:
  visiongo [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestsFlag := flagSet.String("manifests", envCfg.ManifestsPath, "Path to the directory containing capability manifests.")
	logFormatFlag := flagSet.String("log-format", envCfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envCfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	metricsPortFlag := flagSet.Int("metrics-port", envCfg.MetricsPort, "Port for the health/metrics HTTP server. 0 is disabled.")
	describeFlag := flagSet.Bool("describe", false, "Print the capability report (the default mode).")
	versionFlag := flagSet.Bool("version", false, "Print the toolkit version and core status.")
	searchFlag := flagSet.String("search", "", "List capability attributes whose name contains the given substring.")
	opFlag := flagSet.String("op", "", "Apply an operation, named as capability.attribute, to -in and write -out.")
	inFlag := flagSet.String("in", "", "Input image path for -op.")
	outFlag := flagSet.String("out", "", "Output image path for -op.")
	params := paramFlag{}
	flagSet.Var(params, "param", "Operation argument as key=value. May be repeated.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	config, err := app.NewConfig(app.Config{
		ManifestsPath: *manifestsFlag,
		LogFormat:     strings.ToLower(*logFormatFlag),
		LogLevel:      strings.ToLower(*logLevelFlag),
		MetricsPort:   *metricsPortFlag,
		Describe:      *describeFlag,
		ShowVersion:   *versionFlag,
		Search:        *searchFlag,
		Op:            *opFlag,
		InPath:        *inFlag,
		OutPath:       *outFlag,
		Params:        params,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
