package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: missionctl <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve       Run the dashboard web server")
	fmt.Fprintln(w, "  render      Render markdown or an explainer to HTML or PDF")
	fmt.Fprintln(w, "  explainers  List explainer documents")
	fmt.Fprintln(w, "  activity    Print the activity log")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'missionctl help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: missionctl serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the dashboard until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "  -d, --data-dir <path>     Data directory (default: bundled dataset)")
	fmt.Fprintln(w, "  -w, --watch               Reload data when files change")
	fmt.Fprintln(w, "      --no-watch            Never reload data")
	fmt.Fprintln(w, "      --no-pdf              Disable PDF downloads of explainers")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MISSIONCTL_CONFIG, MISSIONCTL_ADDR, MISSIONCTL_DATA_DIR,")
	fmt.Fprintln(w, "  MISSIONCTL_LOG_LEVEL, MISSIONCTL_ENGINE")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: missionctl render <file.md|explainer-id> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown to a standalone HTML document, a body fragment, or a PDF.")
	fmt.Fprintln(w, "Use - to read markdown from stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --fragment            Write the body fragment only")
	fmt.Fprintln(w, "      --pdf                 Write a PDF (requires Chrome)")
	fmt.Fprintln(w, "  -e, --engine <name>       Engine: fragment, goldmark")
	fmt.Fprintln(w, "      --escape              Escape raw HTML in the source")
	fmt.Fprintln(w, "      --style <name|path>   CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/")
	fmt.Fprintln(w, "  -t, --title <s>           Document title")
	fmt.Fprintln(w, "  -d, --data-dir <path>     Data directory for explainer ids")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printExplainersUsage prints usage for the explainers command.
func printExplainersUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: missionctl explainers [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List explainer ids and titles.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -d, --data-dir <path>     Data directory (default: bundled dataset)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printActivityUsage prints usage for the activity command.
func printActivityUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: missionctl activity [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the activity log in file order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -s, --query <text>        Filter by action or description")
	fmt.Fprintln(w, "  -d, --data-dir <path>     Data directory (default: bundled dataset)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printHelp prints help for a command, or the main usage.
func printHelp(w io.Writer, args []string) error {
	if len(args) == 0 {
		printUsage(w)
		return nil
	}
	switch args[0] {
	case cmdServe:
		printServeUsage(w)
	case cmdRender:
		printRenderUsage(w)
	case cmdExplainers:
		printExplainersUsage(w)
	case cmdActivity:
		printActivityUsage(w)
	case cmdVersion:
		fmt.Fprintln(w, "Usage: missionctl version")
	case cmdHelp:
		fmt.Fprintln(w, "Usage: missionctl help [command]")
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
