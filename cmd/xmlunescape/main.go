package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/jacoelho/xmlescape"
	"github.com/jacoelho/xmlescape/internal/textpos"
)

const stdinName = "<stdin>"

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("xmlunescape", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	charset := fs.String("charset", "utf-8", "character encoding of the input")
	stream := fs.Bool("stream", false, "decode while reading instead of loading each input")
	verbose := fs.BoolP("verbose", "v", false, "log progress to stderr")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] [file ...]\n\n", fs.Name()),
			writeln(stderr, "Decodes XML character references. Reads stdin when no file is given."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	enc, err := inputEncoding(*charset)
	if err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	stopProfiling, err := startProfiling(*cpuProfilePath, *memProfilePath)
	if err != nil {
		if writeErr := writef(stderr, "error starting profile: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			_ = writef(stderr, "error stopping profile: %v\n", err)
		}
	}()

	logger := newLogger(*verbose, stderr)
	defer func() {
		_ = logger.Sync()
	}()

	c := &command{
		stdin:  stdin,
		stdout: stdout,
		enc:    enc,
		stream: *stream,
		logger: logger,
	}
	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	status := 0
	for _, name := range inputs {
		if err := c.decodeInput(name); err != nil {
			if writeErr := writeln(stderr, err); writeErr != nil {
				return 1
			}
			status = 1
		}
	}
	return status
}

// inputEncoding resolves a charset label. It returns nil for UTF-8, which
// needs no conversion.
func inputEncoding(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if name == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

type command struct {
	stdin  io.Reader
	stdout io.Writer
	enc    encoding.Encoding
	stream bool
	logger *zap.Logger
}

func (c *command) decodeInput(name string) (err error) {
	r := c.stdin
	display := stdinName
	if name != "-" {
		f, openErr := os.Open(name)
		if openErr != nil {
			return fmt.Errorf("error: %w", openErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("error: close %s: %w", name, closeErr)
			}
		}()
		r = f
		display = name
	}
	if c.enc != nil {
		r = c.enc.NewDecoder().Reader(r)
	}
	if c.stream {
		return c.decodeStream(display, r)
	}
	return c.decodeAll(display, r)
}

// decodeAll loads the whole input so errors can be reported by line and column.
func (c *command) decodeAll(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error: read %s: %w", name, err)
	}
	text, err := xmlescape.Unescape(data)
	if err != nil {
		syntax, ok := xmlescape.AsSyntaxError(err)
		if !ok {
			return fmt.Errorf("error: %s: %w", name, err)
		}
		pos := textpos.Locate(data, syntax.Offset)
		c.logger.Debug("malformed entity",
			zap.String("input", name),
			zap.Int("offset", syntax.Offset),
			zap.ByteString("context", textpos.Snippet(data, syntax.Offset, 16)))
		return fmt.Errorf("%s:%d:%d: %s", name, pos.Line, pos.Column, syntax.Msg)
	}
	c.logger.Debug("decoded input",
		zap.String("input", name),
		zap.Int("in_bytes", len(data)),
		zap.Int("out_bytes", text.Len()),
		zap.Bool("copied", text.Owned()))
	if _, err := c.stdout.Write(text.Bytes()); err != nil {
		return fmt.Errorf("error: write: %w", err)
	}
	return nil
}

// decodeStream decodes while copying. Output written before an error is kept.
func (c *command) decodeStream(name string, r io.Reader) error {
	n, err := io.Copy(c.stdout, xmlescape.NewReader(r))
	if err != nil {
		if syntax, ok := xmlescape.AsSyntaxError(err); ok {
			c.logger.Debug("malformed entity",
				zap.String("input", name),
				zap.Int("offset", syntax.Offset),
				zap.Int64("written", n))
			return fmt.Errorf("%s: offset %d: %s", name, syntax.Offset, syntax.Msg)
		}
		return fmt.Errorf("error: %s: %w", name, err)
	}
	c.logger.Debug("decoded input", zap.String("input", name), zap.Int64("out_bytes", n))
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
