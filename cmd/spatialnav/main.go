package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/spatialnav/internal/focus"
	"github.com/1broseidon/spatialnav/internal/ipc"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "navigate":
		os.Exit(runNavigate(os.Args[2:]))
	case "reset":
		os.Exit(runReset(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "resolve":
		os.Exit(runResolve(os.Args[2:]))
	case "browse":
		os.Exit(runBrowse(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: spatialnav <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the navigation daemon (foreground)")
	fmt.Fprintln(w, "  navigate <dir>      Move window focus up, down, left or right")
	fmt.Fprintln(w, "  reset               Clear window focus")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload the daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  resolve             Navigate a document file and print each focus")
	fmt.Fprintln(w, "  browse <file>       Explore a document file interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate the config file")
	fmt.Fprintln(w, "  config print        Print the effective config")
	fmt.Fprintln(w, "  config explain      Show a value and where it was set")
	fmt.Fprintln(w, "  config path         Print the config file path")
	fmt.Fprintln(w, "  config init         Write the default config file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start the MCP server on stdio")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'spatialnav <command> --help' for command options.")
}

// parseFlags parses args into fs and maps the outcome to an exit code.
// ok is false when the caller should return code immediately.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func runNavigate(args []string) int {
	fs := flag.NewFlagSet("navigate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spatialnav navigate <up|down|left|right>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon to move window focus.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "navigate requires exactly one direction")
		fs.Usage()
		return 2
	}
	dir, err := spatial.ParseDirection(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	data, err := ipc.NewClient().Navigate(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printSnapshot(os.Stdout, data.Focus)
	if !data.Moved {
		fmt.Println("moved:   false")
	}
	return 0
}

func runReset(args []string) int {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spatialnav reset")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Clear window focus and hide the marker.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reset takes no arguments")
		fs.Usage()
		return 2
	}

	if _, err := ipc.NewClient().Reset(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("focus cleared")
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print status as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spatialnav status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("display:        %s\n", status.Display)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Printf("navigations:    %d\n", status.Navigations)
	fmt.Printf("dead_ends:      %d\n", status.DeadEnds)
	fmt.Printf("resets:         %d\n", status.Resets)
	printSnapshot(os.Stdout, status.Focus)
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spatialnav reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon to re-read its configuration.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

func printSnapshot(w io.Writer, snap focus.Snapshot) {
	if !snap.Focused {
		fmt.Fprintln(w, "focus:   none")
		return
	}
	fmt.Fprintf(w, "focus:   %s %s\n", snap.CurrentID, snap.CurrentRect)
	if snap.PreviousID != "" {
		fmt.Fprintf(w, "previous: %s\n", snap.PreviousID)
	}
}
