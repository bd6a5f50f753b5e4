// Command mbm-inspect loads multibody model definitions and inspects,
// checks, snapshots or interactively edits the resulting feature trees.
//
// Usage:
//
//	mbm-inspect <command> [flags] <file>
//
// Commands:
//
//	show       Print the feature tree of a model definition
//	check      Report features whose required placement is unbound
//	snapshot   Save the built tree to a snapshot file
//	restore    Print the tree stored in a snapshot file
//	shell      Edit a model interactively
//	kinds      List constructible feature kinds
//
// Flags shared by the tree commands:
//
//	-event-log string   Write model events to a CBOR event log (.mbl)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Show the arm model with placements
//	mbm-inspect show arm.yaml
//
//	# Show only the forearm subtree
//	mbm-inspect show arm.yaml arm/forearm
//
//	# Snapshot the model and record construction events
//	mbm-inspect snapshot -event-log arm.mbl -o arm.mbs arm.yaml
//
//	# Edit interactively, starting from a snapshot
//	mbm-inspect shell -snapshot arm.mbs
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/multibody-modeling/mbm-go/cmd/mbm-inspect/interactive"
	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/inspect"
	"github.com/multibody-modeling/mbm-go/pkg/log"
	"github.com/multibody-modeling/mbm-go/pkg/modeldef"
	"github.com/multibody-modeling/mbm-go/pkg/persistence"
	"github.com/multibody-modeling/mbm-go/pkg/placement"
)

const usage = `mbm-inspect - Multibody Model Inspector

Usage:
  mbm-inspect <command> [flags] <file>

Commands:
  show       Print the feature tree of a model definition
  check      Report features whose required placement is unbound
  snapshot   Save the built tree to a snapshot file
  restore    Print the tree stored in a snapshot file
  shell      Edit a model interactively
  kinds      List constructible feature kinds

Use "mbm-inspect <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "show":
		err = runShow(args, os.Stdout)
	case "check":
		err = runCheck(args, os.Stdout)
	case "snapshot":
		err = runSnapshot(args, os.Stdout)
	case "restore":
		err = runRestore(args, os.Stdout)
	case "shell":
		err = runShell(args)
	case "kinds":
		fmt.Print(inspect.NewFormatter().FormatKinds())
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUnplaced) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// errUnplaced makes check exit with status 2.
var errUnplaced = errors.New("required placements are unbound")

// logOutput lets the shell redirect log output through readline.
type logOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *logOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w.Write(p)
}

func (o *logOutput) SetOutput(w io.Writer) {
	o.mu.Lock()
	o.w = w
	o.mu.Unlock()
}

var stderr = &logOutput{w: os.Stderr}

// treeFlags are the logging flags shared by every command that builds a tree.
type treeFlags struct {
	eventLog *string
	logLevel *string
}

func addTreeFlags(fs *flag.FlagSet) *treeFlags {
	return &treeFlags{
		eventLog: fs.String("event-log", "", "Write model events to a CBOR event log (.mbl)"),
		logLevel: fs.String("log-level", "info", "Log level: debug, info, warn, error"),
	}
}

// setup configures slog and returns the feature options that attach the
// event loggers. The returned close function flushes the event log and must
// run on every exit path, failed ones included.
func (tf *treeFlags) setup() ([]feature.Option, func(), error) {
	logger := setupLogging(*tf.logLevel)
	loggers := []log.Logger{log.NewSlogAdapter(logger)}
	closeFn := func() {}

	if *tf.eventLog != "" {
		fl, err := log.NewFileLogger(*tf.eventLog)
		if err != nil {
			return nil, nil, fmt.Errorf("open event log: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Close(); err != nil {
				slog.Warn("close event log", "path", *tf.eventLog, "error", err)
			}
		}
	}

	return []feature.Option{feature.WithLogger(log.NewMultiLogger(loggers...))}, closeFn, nil
}

func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

func newFlagSet(name, summary, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mbm-inspect %s - %s

Usage:
  mbm-inspect %s [flags] %s

Flags:
`, name, summary, name, args)
		fs.PrintDefaults()
	}
	return fs
}

func requireArg(fs *flag.FlagSet, what string) {
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: %s required\n", what)
		fs.Usage()
		os.Exit(1)
	}
}

func loadModel(path string, opts []feature.Option) (*modeldef.Model, error) {
	m, err := modeldef.LoadModel(path, opts...)
	if err != nil {
		return nil, err
	}
	slog.Info("model loaded", "path", path, "root", m.Root.Name(), "features", m.Root.Tree().Len(), "version", m.Version.String())
	return m, nil
}

func runShow(args []string, w io.Writer) error {
	fs := newFlagSet("show", "Print the feature tree of a model definition", "<model.yaml> [path]")
	tf := addTreeFlags(fs)
	noPlacement := fs.Bool("no-placement", false, "Hide placement values")
	noIndices := fs.Bool("no-indices", false, "Hide subfeature indices")

	if err := fs.Parse(args); err != nil {
		return err
	}
	requireArg(fs, "model file")

	opts, closeLog, err := tf.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := loadModel(fs.Arg(0), opts)
	if err != nil {
		return err
	}
	fmtr := inspect.NewFormatter()
	fmtr.ShowPlacement = !*noPlacement
	fmtr.ShowIndices = !*noIndices

	return show(w, fmtr, inspect.NewInspector(m.Root, m.Binder), fs.Arg(1))
}

// show prints the whole tree, or the subtree at path when path is set.
func show(w io.Writer, fmtr *inspect.Formatter, insp *inspect.Inspector, path string) error {
	if path == "" {
		fmt.Fprint(w, fmtr.FormatTree(insp.InspectTree()))
		return nil
	}
	f, err := insp.Resolve(path)
	if err != nil {
		return err
	}
	info := inspect.NewInspector(f, insp.Binder()).InspectTree().Root
	fmt.Fprint(w, fmtr.FormatFeature(&info))
	return nil
}

func runCheck(args []string, w io.Writer) error {
	fs := newFlagSet("check", "Report features whose required placement is unbound", "<model.yaml>")
	tf := addTreeFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	requireArg(fs, "model file")

	opts, closeLog, err := tf.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := loadModel(fs.Arg(0), opts)
	if err != nil {
		return err
	}
	checkErr := inspect.NewInspector(m.Root, m.Binder).Check()
	fmt.Fprintln(w, strings.TrimRight(inspect.NewFormatter().FormatCheck(checkErr), "\n"))

	if errors.Is(checkErr, feature.ErrUnplacedRequiredFeature) {
		return errUnplaced
	}
	return checkErr
}

func runSnapshot(args []string, w io.Writer) error {
	fs := newFlagSet("snapshot", "Save the built tree to a snapshot file", "<model.yaml>")
	tf := addTreeFlags(fs)
	output := fs.String("o", "", "Output snapshot file (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	requireArg(fs, "model file")
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts, closeLog, err := tf.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := loadModel(fs.Arg(0), opts)
	if err != nil {
		return err
	}
	snap := persistence.Capture(m.Root, m.Binder)
	if err := persistence.NewSnapshotStore(*output).Save(snap); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %d features of tree %s to %s\n", len(snap.Nodes), snap.TreeID, *output)
	return nil
}

func loadSnapshot(path string, opts []feature.Option) (*feature.Feature, *placement.Binder, error) {
	snap, err := persistence.NewSnapshotStore(path).Load()
	if err != nil {
		return nil, nil, err
	}
	if snap == nil {
		return nil, nil, fmt.Errorf("snapshot file not found: %s", path)
	}
	root, binder, err := persistence.Restore(snap, opts...)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("snapshot restored", "path", path, "tree_id", snap.TreeID, "saved_at", snap.SavedAt, "features", len(snap.Nodes))
	return root, binder, nil
}

func runRestore(args []string, w io.Writer) error {
	fs := newFlagSet("restore", "Print the tree stored in a snapshot file", "<file.mbs> [path]")
	tf := addTreeFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	requireArg(fs, "snapshot file")

	opts, closeLog, err := tf.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	root, binder, err := loadSnapshot(fs.Arg(0), opts)
	if err != nil {
		return err
	}
	return show(w, inspect.NewFormatter(), inspect.NewInspector(root, binder), fs.Arg(1))
}

func runShell(args []string) error {
	fs := newFlagSet("shell", "Edit a model interactively", "[<model.yaml>]")
	tf := addTreeFlags(fs)
	snapshot := fs.String("snapshot", "", "Start from a snapshot file instead of a model definition")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *snapshot == "" {
		requireArg(fs, "model file or -snapshot")
	}

	opts, closeLog, err := tf.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	var insp *inspect.Inspector
	if *snapshot != "" {
		root, binder, err := loadSnapshot(*snapshot, opts)
		if err != nil {
			return err
		}
		insp = inspect.NewInspector(root, binder)
	} else {
		m, err := loadModel(fs.Arg(0), opts)
		if err != nil {
			return err
		}
		insp = inspect.NewInspector(m.Root, m.Binder)
	}

	sh, err := interactive.New(insp, opts...)
	if err != nil {
		return err
	}
	// Keep log lines from clobbering the prompt.
	stderr.SetOutput(sh.Stderr())
	defer stderr.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sh.Run(ctx, cancel)
	return nil
}
