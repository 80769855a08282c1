package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common  commonFlags
	addr    string
	dataDir string
	watch   bool
	noWatch bool
	noPDF   bool
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common    commonFlags
	output    string
	fragment  bool
	pdf       bool
	engine    string
	escape    bool
	style     string
	assetPath string
	title     string
	dataDir   string
}

// activityFlags holds flags for the activity command.
type activityFlags struct {
	common  commonFlags
	query   string
	dataDir string
}

// explainersFlags holds flags for the explainers command.
type explainersFlags struct {
	common  commonFlags
	dataDir string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", w, printServeUsage)

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (host:port)")
	fs.StringVarP(&f.dataDir, "data-dir", "d", "", "dashboard data directory")
	fs.BoolVarP(&f.watch, "watch", "w", false, "reload data on file changes")
	fs.BoolVar(&f.noWatch, "no-watch", false, "disable reloading even if the config enables it")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "disable the explainer PDF download route")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout, or <name>.pdf with --pdf)")
	fs.BoolVar(&f.fragment, "fragment", false, "write the body fragment only")
	fs.BoolVar(&f.pdf, "pdf", false, "write a PDF (requires Chrome)")
	fs.StringVarP(&f.engine, "engine", "e", "", "render engine: fragment, goldmark")
	fs.BoolVar(&f.escape, "escape", false, "escape raw HTML in the source")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVarP(&f.title, "title", "t", "", "document title")
	fs.StringVarP(&f.dataDir, "data-dir", "d", "", "dashboard data directory (for explainer ids)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseActivityFlags parses activity command flags.
func parseActivityFlags(args []string, w io.Writer) (*activityFlags, []string, error) {
	f := &activityFlags{}
	fs := newFlagSet("activity", w, printActivityUsage)

	fs.StringVarP(&f.query, "query", "s", "", "filter by action or description")
	fs.StringVarP(&f.dataDir, "data-dir", "d", "", "dashboard data directory")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseExplainersFlags parses explainers command flags.
func parseExplainersFlags(args []string, w io.Writer) (*explainersFlags, []string, error) {
	f := &explainersFlags{}
	fs := newFlagSet("explainers", w, printExplainersUsage)

	fs.StringVarP(&f.dataDir, "data-dir", "d", "", "dashboard data directory")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
