package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/alecthomas/kingpin"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/jsonsift/jsonsift"
	"github.com/jsonsift/jsonsift/document"
	"github.com/jsonsift/jsonsift/sax"
)

var (
	key = kingpin.Flag("key", "Name of the key to remove at any depth.").
		Short('k').Default("coordinates").String()
	printJSON = kingpin.Flag("print", "Print the filtered JSON instead of statistics.").
			Short('p').Bool()
	indentSize = kingpin.Flag("indent", "Indentation size for printed JSON, negative for a single line.").
			Default("2").Int()
	colorMode = kingpin.Flag("color", "Colorize output: auto, always or never.").
			Default("auto").Enum("auto", "always", "never")
	traceEvents = kingpin.Flag("trace", "Log every event to stderr.").Bool()
	inputFile   = kingpin.Arg("file", "GeoJSON file to read (default stdin).").File()
)

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling at the bottom of main).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
		}
	}()

	kingpin.Parse()

	var input io.Reader = os.Stdin
	if *inputFile != nil {
		input = *inputFile
		defer (*inputFile).Close()
	}

	useColors := isatty.IsTerminal(os.Stdout.Fd())
	switch *colorMode {
	case "always":
		useColors = true
	case "never":
		useColors = false
	}

	src := jsonsift.NewKeyFilterSource(input, *key)

	var handler sax.Handler
	var flush func() error
	builder := document.NewBuilder()

	if *printJSON {
		var stdout io.Writer = os.Stdout
		var colorizer *jsonsift.Colorizer
		if useColors {
			stdout = colorable.NewColorableStdout()
			colorizer = &defaultColorizer
		}
		out := bufio.NewWriter(stdout)
		flush = func() error {
			out.WriteByte('\n')
			return out.Flush()
		}
		handler = &jsonsift.Encoder{
			Printer:   &jsonsift.DefaultPrinter{Writer: out, IndentSize: *indentSize},
			Colorizer: colorizer,
		}
	} else {
		handler = builder
	}

	if *traceEvents {
		log := logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.DebugLevel)
		handler = &sax.TraceHandler{Next: handler, Log: log}
	}

	err := src.Produce(handler)
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return
		}
		if perr := src.Result(); perr != nil {
			fatalError("gq: %s", perr)
		}
		fatalError("gq: %s", err)
	}

	if *printJSON {
		if err := flush(); err != nil && !errors.Is(err, syscall.EPIPE) {
			fatalError("gq: %s", err)
		}
		return
	}

	doc, err := builder.Root()
	if err != nil {
		fatalError("gq: %s", err)
	}
	stats, err := collectStats(doc)
	if err != nil {
		fatalError("gq: %s", err)
	}
	color.NoColor = !useColors
	printStats(os.Stdout, stats)
}

func fatalError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// Some color ANSI codes
var (
	reset      = []byte("\033[0m")
	yellow     = []byte("\033[33m")
	white      = []byte("\033[37m")
	green      = []byte("\033[32m")
	brightBlue = []byte("\033[34;1m")
)

var defaultColorizer = jsonsift.Colorizer{
	KeyColorCode:     brightBlue,
	StringColorCode:  yellow,
	NumberColorCode:  white,
	LiteralColorCode: green,
	ResetCode:        reset,
}
