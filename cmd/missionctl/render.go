package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	missioncontrol "github.com/alnah/mission-control"
	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/fileutil"
	"github.com/alnah/mission-control/internal/hints"
)

// stdinArg reads markdown from standard input.
const stdinArg = "-"

// renderSource is the markdown to render and its document metadata.
type renderSource struct {
	name        string // base name for default output files
	markdown    string
	title       string
	description string
	dir         string // resolves relative images in PDFs
}

// runRender renders a markdown file, stdin, or an explainer by id.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one file, explainer id, or -", ErrUsage)
	}
	if flags.fragment && flags.pdf {
		return fmt.Errorf("%w: --fragment and --pdf are mutually exclusive", ErrUsage)
	}

	cfg, err := loadCommandConfig(flags.common, func(c *config.Config) {
		if flags.engine != "" {
			c.Render.Engine = flags.engine
		}
		if flags.escape {
			c.Render.EscapeHTML = true
		}
		if flags.style != "" {
			c.Render.Style = flags.style
		}
		if flags.assetPath != "" {
			c.Assets.BasePath = flags.assetPath
		}
		if flags.dataDir != "" {
			c.Data.Dir = flags.dataDir
		}
		c.Data.Watch = false
	})
	if err != nil {
		return err
	}

	src, err := resolveRenderSource(positional[0], cfg, flags.common, env)
	if err != nil {
		return err
	}
	if flags.title != "" {
		src.title = flags.title
	}

	opts, err := rendererOptions(cfg)
	if err != nil {
		return err
	}
	renderer, err := missioncontrol.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = renderer.Close() }()

	input := missioncontrol.Input{
		Markdown:    src.markdown,
		Title:       src.title,
		Description: src.description,
		SourceDir:   src.dir,
	}

	switch {
	case flags.fragment:
		frag, err := renderer.RenderFragment(ctx, src.markdown)
		if err != nil {
			return err
		}
		return writeResult(env, flags.output, []byte(frag+"\n"))

	case flags.pdf:
		pdf, err := renderer.RenderPDF(ctx, input)
		if err != nil {
			return err
		}
		out := flags.output
		if out == "" {
			out = src.name + ".pdf"
		}
		if err := writeResult(env, out, pdf); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "wrote %s\n", out)
		}
		return nil

	default:
		res, err := renderer.Render(ctx, input)
		if err != nil {
			return err
		}
		return writeResult(env, flags.output, []byte(res.HTML))
	}
}

// resolveRenderSource reads the markdown named by arg: stdin, a file path,
// or an explainer id from the dataset.
func resolveRenderSource(arg string, cfg *config.Config, common commonFlags, env *Environment) (*renderSource, error) {
	switch {
	case arg == stdinArg:
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
		}
		return &renderSource{name: "stdin", markdown: string(data)}, nil

	case fileutil.IsFilePath(arg):
		data, err := os.ReadFile(arg) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadMarkdown, arg, err)
		}
		name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		return &renderSource{
			name:     name,
			markdown: string(data),
			title:    name,
			dir:      filepath.Dir(arg),
		}, nil

	default:
		logger, err := newLogger(cfg, common, env)
		if err != nil {
			return nil, err
		}
		defer func() { _ = logger.Close() }()

		store, err := openStore(cfg, logger, env)
		if err != nil {
			return nil, err
		}
		ds := store.Snapshot()
		e, err := ds.FindExplainer(arg)
		if err != nil {
			return nil, withHint(err, hints.ForUnknownExplainer(ds.ExplainerIDs()))
		}
		return &renderSource{
			name:        e.ID,
			markdown:    e.Content,
			title:       e.Title,
			description: e.Description,
			dir:         explainerDir(cfg),
		}, nil
	}
}

// explainerDir is where an explainer's relative images live.
func explainerDir(cfg *config.Config) string {
	if cfg.Data.Dir == "" {
		return ""
	}
	return filepath.Join(cfg.Data.Dir, dashboard.ExplainersDir)
}

// writeResult writes data to path, or to stdout when path is empty.
func writeResult(env *Environment, path string, data []byte) error {
	if path == "" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteOutput(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
