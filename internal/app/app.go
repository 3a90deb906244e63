package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"tax-tool/internal/config"
	"tax-tool/internal/endpoint"
	"tax-tool/internal/httpclient"
	"tax-tool/internal/input"
	"tax-tool/internal/logging"
	"tax-tool/internal/operation"
	"tax-tool/internal/persist"
	"tax-tool/internal/sanitize"
	"tax-tool/internal/util"
)

// ErrUsage signals bad command-line arguments; main prints usage on it.
var ErrUsage = errors.New("usage error")

// --- Interfaces for Testability ---

// configResolver defines the interface for resolving runtime configuration.
type configResolver interface {
	Resolve(configFile string) (config.Config, error)
}

// inputLoader defines the interface for loading the payload file.
type inputLoader interface {
	Load(path string) ([]byte, string, error)
}

// sender defines the interface for the transport client.
type sender interface {
	Send(ctx context.Context, url string, payload []byte) ([]byte, error)
}

// persister defines the interface for writing the response artifact.
type persister interface {
	Write(response []byte, originalName, outputDir string) (string, error)
}

// --- Default Implementations ---

type defaultResolver struct{}

func (defaultResolver) Resolve(configFile string) (config.Config, error) {
	return config.Resolve(configFile)
}

type defaultLoader struct{}

func (defaultLoader) Load(path string) ([]byte, string, error) {
	return input.Load(path)
}

type defaultPersister struct{}

func (defaultPersister) Write(response []byte, originalName, outputDir string) (string, error) {
	return persist.Write(response, originalName, outputDir)
}

// --- AppRunner ---

// AppRunner encapsulates the submission pipeline and its dependencies.
type AppRunner struct {
	configResolver configResolver
	inputLoader    inputLoader
	persister      persister
	// senderFactory builds the transport client once the logger exists.
	senderFactory func(logging.Logger) sender
	// loggerFactory builds the diagnostic logger once the log dir is known.
	loggerFactory func(dir string, level int) logging.Logger

	stdout io.Writer
}

// AppRunnerOpts allows configuring the AppRunner's dependencies.
type AppRunnerOpts struct {
	ConfigResolver configResolver
	InputLoader    inputLoader
	Persister      persister
	SenderFactory  func(logging.Logger) sender
	LoggerFactory  func(dir string, level int) logging.Logger
	Stdout         io.Writer
}

// NewAppRunner creates an application runner with default dependencies.
func NewAppRunner() *AppRunner {
	return NewAppRunnerWithOpts(AppRunnerOpts{})
}

// NewAppRunnerWithOpts creates an AppRunner allowing dependency injection.
func NewAppRunnerWithOpts(opts AppRunnerOpts) *AppRunner {
	r := &AppRunner{
		configResolver: opts.ConfigResolver,
		inputLoader:    opts.InputLoader,
		persister:      opts.Persister,
		senderFactory:  opts.SenderFactory,
		loggerFactory:  opts.LoggerFactory,
		stdout:         opts.Stdout,
	}
	if r.configResolver == nil {
		r.configResolver = defaultResolver{}
	}
	if r.inputLoader == nil {
		r.inputLoader = defaultLoader{}
	}
	if r.persister == nil {
		r.persister = defaultPersister{}
	}
	if r.senderFactory == nil {
		r.senderFactory = func(logger logging.Logger) sender {
			return httpclient.NewClient(logger)
		}
	}
	if r.loggerFactory == nil {
		r.loggerFactory = func(dir string, level int) logging.Logger {
			return logging.NewFileLogger(dir, level)
		}
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	return r
}

// usageText defines the command-line help information.
const usageText = `Usage:
  tax-tool [options] <operation> <input-file>

Operations:
  get_tax      Calculate tax without committing the transaction
  post_tax     Calculate tax and commit the transaction
  cancel_tax   Cancel a previously committed transaction

Options:
  -config string
        Optional YAML configuration file (environment variables win)
  -loglevel string
        Logging level (none, error, warn, info, debug) (default "info")
  -help
        Show help

Environment:
  BASE_URL    (required) trailing-slash-terminated API base URL
  API_CODE    (required) auth code appended to calculate requests
  OUTPUT_DIR  (required) directory for response artifacts
  TEST_MODE   "true" redirects calculate requests to the sandbox endpoint
  LOG_DIR     directory for daily error logs (default "logs")
  SANITIZE_STRINGS
              "true" doubles apostrophes in payload string values

Example:
  tax-tool get_tax order123.json
`

// Usage prints the command-line help information to the specified writer.
func (a *AppRunner) Usage(writer io.Writer) {
	fmt.Fprint(writer, usageText)
}

// Run parses command-line arguments and drives the pipeline: resolve
// config, load input, validate, resolve endpoint, send, persist.
func (a *AppRunner) Run(args []string) error {
	fs := flag.NewFlagSet("tax-tool", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configFile := fs.String("config", "", "Optional YAML configuration file")
	logLevelStr := fs.String("loglevel", "info", "Logging level (none, error, warn, info, debug)")
	helpFlag := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			a.Usage(os.Stderr)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *helpFlag {
		a.Usage(os.Stderr)
		return nil
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: expected <operation> <input-file>, got %d argument(s)", ErrUsage, fs.NArg())
	}
	opArg, inputPath := fs.Arg(0), fs.Arg(1)

	logLevel, err := logging.ParseLevel(*logLevelStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN]  %v, defaulting to 'info'\n", err)
		logLevel = logging.Info
	}

	cfg, err := a.configResolver.Resolve(*configFile)
	if err != nil {
		// No config means no configured log dir; the default still gets
		// the error line.
		logger := a.loggerFactory(config.DefaultLogDir, logLevel)
		logger.Errorf("Configuration error: %v", err)
		closeLogger(logger)
		return err
	}

	logger := a.loggerFactory(cfg.LogDir, logLevel)
	defer closeLogger(logger)

	return a.submit(context.Background(), cfg, logger, opArg, inputPath)
}

// submit runs the validated pipeline for one invocation. Every failure is
// terminal: logged once, then returned unchanged.
func (a *AppRunner) submit(ctx context.Context, cfg config.Config, logger logging.Logger, opArg, inputPath string) error {
	op, err := operation.Parse(opArg)
	if err != nil {
		logger.Errorf("Operation validation failed: %v", err)
		return err
	}

	payload, baseName, err := a.inputLoader.Load(inputPath)
	if err != nil {
		logger.Errorf("Input loading failed: %v", err)
		return err
	}
	logger.Debugf("Loaded input '%s' (%d bytes)", baseName, len(payload))

	payload, err = operation.Validate(op, payload)
	if err != nil {
		logger.Errorf("Payload validation failed: %v", err)
		return err
	}

	if cfg.SanitizeStrings {
		payload, err = sanitize.Strings(payload)
		if err != nil {
			logger.Errorf("Payload sanitization failed: %v", err)
			return err
		}
		logger.Debugf("Payload string values sanitized")
	}

	url, err := endpoint.Resolve(cfg, op)
	if err != nil {
		logger.Errorf("Endpoint resolution failed: %v", err)
		return err
	}
	logger.Infof("Submitting %s to %s", op, url)

	response, err := a.senderFactory(logger).Send(ctx, url, payload)
	if err != nil {
		logger.Errorf("Request failed: %v", err)
		return err
	}
	logger.Debugf("Response snippet: %s", util.Snippet(response))

	path, err := a.persister.Write(response, baseName, cfg.OutputDir)
	if err != nil {
		logger.Errorf("Persisting response failed: %v", err)
		return err
	}
	logger.Infof("Response written to %s", path)
	fmt.Fprintln(a.stdout, path)
	return nil
}

func closeLogger(logger logging.Logger) {
	if c, ok := logger.(io.Closer); ok {
		c.Close()
	}
}
