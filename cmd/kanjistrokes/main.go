// Command kanjistrokes converts the stroke data of a KanjiVG file into a JSON
// database of simplified, normalized strokes.
//
// Usage:
//
//	kanjistrokes -asset kanjivg.xml [-list chars.txt] [-o strokes.json]
//
// Without -list, every character with an entry of its own in the asset is
// converted. Conversion settings are read from the YAML or TOML file named by
// -config; -workers overrides the configured number of workers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/mitchellh/go-homedir"
	"github.com/pterm/pterm"
	"honnef.co/go/strokedb/convert"
	"honnef.co/go/strokedb/kanjivg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "kanjistrokes: %s\n", err)
		os.Exit(1)
	}
}

type options struct {
	config  string
	asset   string
	list    string
	out     string
	svg     string
	png     string
	labels  bool
	workers int
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("kanjistrokes", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.config, "config", "", "YAML or TOML `file` with conversion settings")
	fs.StringVar(&opts.asset, "asset", "", "KanjiVG `file` to read strokes from, optionally gzipped")
	fs.StringVar(&opts.list, "list", "", "`file` listing the characters to convert, one per line")
	fs.StringVar(&opts.out, "o", "strokes.json", "output `file`")
	fs.StringVar(&opts.svg, "svg", "", "write an SVG preview to `file`")
	fs.StringVar(&opts.png, "png", "", "write a PNG preview to `file`")
	fs.BoolVar(&opts.labels, "labels", false, "label characters in the SVG preview")
	fs.IntVar(&opts.workers, "workers", -1, "number of characters to convert concurrently, 0 for one per CPU")
	fs.BoolVar(&opts.verbose, "v", false, "log every converted character")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %q", fs.Args())
	}
	if opts.asset == "" {
		return opts, errors.New("missing -asset")
	}
	for _, p := range []*string{&opts.config, &opts.asset, &opts.list, &opts.out, &opts.svg, &opts.png} {
		if *p == "" {
			continue
		}
		var err error
		if *p, err = homedir.Expand(*p); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := pterm.LogLevelInfo
	if opts.verbose {
		level = pterm.LogLevelDebug
	}
	logger := pterm.DefaultLogger.WithLevel(level).WithWriter(stderr)
	convert.SetLogger(slog.New(pterm.NewSlogHandler(logger)))
	defer convert.SetLogger(nil)

	cfg := convert.DefaultConfig()
	if opts.config != "" {
		if cfg, err = convert.LoadConfig(opts.config); err != nil {
			return err
		}
	}
	if opts.workers >= 0 {
		cfg.Workers = opts.workers
	}

	asset, err := kanjivg.Open(opts.asset)
	if err != nil {
		return err
	}
	chars := asset.Characters()
	if opts.list != "" {
		if chars, err = readList(opts.list); err != nil {
			return err
		}
	}

	conv, err := convert.New(asset, cfg)
	if err != nil {
		return err
	}
	res, err := conv.Run(ctx, chars)
	if err != nil {
		return err
	}

	if err := writeFile(opts.out, func(w io.Writer) error {
		_, err := res.DB.WriteTo(w)
		return err
	}); err != nil {
		return err
	}
	if opts.svg != "" {
		if err := writeFile(opts.svg, func(w io.Writer) error {
			return convert.WritePreview(w, res.DB, convert.PreviewOptions{Labels: opts.labels})
		}); err != nil {
			return err
		}
	}
	if opts.png != "" {
		if err := writeFile(opts.png, func(w io.Writer) error {
			return convert.WritePreviewPNG(w, res.DB, convert.PreviewOptions{})
		}); err != nil {
			return err
		}
	}

	if err := printSummary(stdout, res.Summary()); err != nil {
		return err
	}
	pterm.Success.WithWriter(stdout).Printfln("saved %d characters to %s", res.DB.Len(), opts.out)
	return nil
}

func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	chars, err := convert.ReadCharacters(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return chars, nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func printSummary(w io.Writer, s convert.Summary) error {
	data := [][]string{
		{"Outcome", "Count"},
		{"converted", strconv.Itoa(s.Converted)},
	}
	for _, r := range []convert.Reason{convert.NotFound, convert.NoStrokes} {
		data = append(data, []string{"skipped: " + r.String(), strconv.Itoa(s.Skipped[r])})
	}
	data = append(data, []string{"strokes left out", strconv.Itoa(s.StrokeFailures)})
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}
