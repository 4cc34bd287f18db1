package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Plasmatium/snakecase"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	inGlob     = pflag.StringP("in", "i", "", "input go file to extract struct fields from, support glob pattern")
	outPath    = pflag.StringP("out", "o", "", "output file, stdout if empty")
	useUnicode = pflag.BoolP("unicode", "u", false, "keep non-ASCII letters and digits")
	charset    = pflag.StringP("encoding", "e", "utf-8", "character encoding of stdin")
	tagKey     = pflag.String("tag", "json", "struct tag whose name is used instead of the converted field name")
	uniq       = pflag.Bool("uniq", false, "drop duplicate results (text mode)")
	skipEmpty  = pflag.Bool("skip-empty", false, "drop empty results (text mode)")
	verbose    = pflag.BoolP("verbose", "v", false, "log every conversion")
)

type options struct {
	in        string
	encoding  string
	tag       string
	unicode   bool
	uniq      bool
	skipEmpty bool
}

// converter matches snakecase.ConvertASCII and snakecase.ConvertUnicode.
type converter func(string) (string, bool)

func loadFlags() options {
	pflag.Parse()
	if *inGlob != "" && pflag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "--in can't be combined with arguments")
		pflag.Usage()
		os.Exit(1)
	}
	if *inGlob != "" && !strings.HasSuffix(*inGlob, ".go") {
		*inGlob = filepath.Join(*inGlob, "*.go")
	}

	return options{
		in:        *inGlob,
		encoding:  *charset,
		tag:       *tagKey,
		unicode:   *useUnicode,
		uniq:      *uniq,
		skipEmpty: *skipEmpty,
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	return logger, errors.Wrap(err, "can't build logger")
}

func main() {
	opts := loadFlags()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := runToFile(opts, pflag.Args(), os.Stdin, *outPath, logger); err != nil {
		logger.Fatal("can't convert", zap.Error(err))
	}
}

// runToFile runs into the file at path, or stdout when path is empty, and
// reports a failed close as an error.
func runToFile(opts options, args []string, stdin io.Reader, path string, logger *zap.Logger) (err error) {
	if path == "" {
		return run(opts, args, stdin, os.Stdout, logger)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "can't create output file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "can't close output file")
		}
	}()

	return run(opts, args, stdin, f, logger)
}

func run(opts options, args []string, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	convert := converter(snakecase.ConvertASCII)
	if opts.unicode {
		convert = snakecase.ConvertUnicode
	}

	var lines []string
	if opts.in != "" {
		var err error
		lines, err = fieldLines(opts.in, opts.tag, convert, logger)
		if err != nil {
			return err
		}
	} else {
		inputs := args
		if len(inputs) == 0 {
			var err error
			inputs, err = readLines(stdin, opts.encoding)
			if err != nil {
				return err
			}
		}

		lines = convertAll(inputs, convert, logger)
		if opts.skipEmpty {
			lines = lo.Filter(lines, func(s string, _ int) bool {
				return s != ""
			})
		}
		if opts.uniq {
			lines = lo.Uniq(lines)
		}
	}

	w := bufio.NewWriter(stdout)
	for _, line := range lines {
		_, _ = w.WriteString(line)
		_ = w.WriteByte('\n')
	}

	return errors.Wrap(w.Flush(), "can't write output")
}

func convertAll(inputs []string, convert converter, logger *zap.Logger) []string {
	return lo.Map(inputs, func(s string, _ int) string {
		out, rewritten := convert(s)
		logger.Debug("converted", zap.String("input", s), zap.String("output", out), zap.Bool("rewritten", rewritten))

		return out
	})
}
