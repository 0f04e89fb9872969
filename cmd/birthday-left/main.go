package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/tartampluch/birthday-left/internal/config"
	"github.com/tartampluch/birthday-left/internal/engine"
	"github.com/tartampluch/birthday-left/internal/export"
)

// errUsage signals too few positional arguments.
var errUsage = errors.New(config.ErrTooFewArguments)

// options carries the parsed command line.
type options struct {
	args      []string
	format    string
	vcard     string
	vcardUser string
}

// main delegates to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr, engine.RealClock{}))
}

// runMain parses args, computes the birthday window and writes it to stdout.
// It returns config.ExitCodeSuccess, config.ExitCodeUsage or config.ExitCodeParse.
func runMain(args []string, stdout, stderr io.Writer, clock engine.Clock) int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	flags := pflag.NewFlagSet(config.AppName, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, config.Usage)
		flags.PrintDefaults()
	}

	var opts options
	showVersion := flags.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flags.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flags.StringVar(&opts.format, config.FlagFormat, config.DefaultFormat, config.FlagDescFormat)
	flags.StringVar(&opts.vcard, config.FlagVCard, "", config.FlagDescVCard)
	flags.StringVar(&opts.vcardUser, config.FlagVCardUser, "", config.FlagDescVCardUser)

	if err := flags.Parse(args); err != nil {
		// pflag prints the usage itself for --help.
		if errors.Is(err, pflag.ErrHelp) {
			return config.ExitCodeSuccess
		}
		fmt.Fprintln(stderr, err)
		flags.Usage()
		return config.ExitCodeUsage
	}
	opts.args = flags.Args()

	if *showVersion {
		printVersion(stdout)
		return config.ExitCodeSuccess
	}

	if !export.Supported(opts.format) {
		fmt.Fprintf(stderr, "%s: %q\n", config.ErrUnknownFormat, opts.format)
		flags.Usage()
		return config.ExitCodeUsage
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	setupLogging(stderr, *debugMode)
	logStartupInfo()

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Only a remote vCard download can block; Ctrl+C aborts it.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	calc, err := build(ctx, opts, clock)
	if errors.Is(err, errUsage) {
		flags.Usage()
		return config.ExitCodeUsage
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return config.ExitCodeParse
	}

	// Render fully before writing so that a failure leaves stdout empty.
	var out bytes.Buffer
	if err := export.Write(&out, opts.format, calc); err != nil {
		fmt.Fprintln(stderr, err)
		return config.ExitCodeParse
	}
	if _, err := out.WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.ErrWriteOutput, err)
		return config.ExitCodeParse
	}
	return config.ExitCodeSuccess
}

// build resolves the person, from the positional arguments or a vCard, and
// evaluates the window at the optional reference time.
func build(ctx context.Context, opts options, clock engine.Clock) (*engine.Calculator, error) {
	var (
		person    *engine.Person
		reference = config.ReferenceNow
		err       error
	)

	if opts.vcard != "" {
		if len(opts.args) < config.MinArgsVCard {
			return nil, errUsage
		}
		if len(opts.args) > config.MinArgsVCard {
			reference = opts.args[config.MinArgsVCard]
		}
		person, err = personFromVCard(ctx, opts)
	} else {
		if len(opts.args) < config.MinArgs {
			return nil, errUsage
		}
		if len(opts.args) > config.MinArgs {
			reference = opts.args[config.MinArgs]
		}
		person, err = engine.NewPerson(opts.args[0], opts.args[1], opts.args[2])
	}
	if err != nil {
		return nil, err
	}

	return engine.NewCalculator(person, reference, clock)
}

func personFromVCard(ctx context.Context, opts options) (*engine.Person, error) {
	rc, err := engine.OpenVCard(ctx, opts.vcard, opts.vcardUser, engine.NewHTTPFetcher())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	slog.Debug(config.MsgVCardOpen,
		config.LogKeyComponent, config.CompMain,
		config.LogKeySource, opts.vcard,
	)
	return engine.LoadPersonFromVCard(rc, opts.args[0], opts.args[1])
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Standard output is
// reserved for the result, so logs go to stderr and only in debug mode.
func setupLogging(w io.Writer, debugMode bool) {
	if !debugMode {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return
	}

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
}
