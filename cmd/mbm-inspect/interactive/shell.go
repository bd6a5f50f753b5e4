// Package interactive provides the interactive command-line interface
// for mbm-inspect.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/inspect"
	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
	"github.com/multibody-modeling/mbm-go/pkg/persistence"
)

// Shell handles interactive editing of feature trees.
type Shell struct {
	trees     []*inspect.Inspector
	current   int
	formatter *inspect.Formatter
	opts      []feature.Option
	out       io.Writer
	rl        *readline.Instance
}

// New creates a new interactive shell over the tree held by insp. Trees
// created by the shell are built with opts.
func New(insp *inspect.Inspector, opts ...feature.Option) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mbm> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(insp, rl.Stdout(), opts)
	s.rl = rl
	return s, nil
}

func newShell(insp *inspect.Inspector, out io.Writer, opts []feature.Option) *Shell {
	return &Shell{
		trees:     []*inspect.Inspector{insp},
		formatter: inspect.NewFormatter(),
		opts:      opts,
		out:       out,
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Current returns the inspector of the tree commands operate on.
func (s *Shell) Current() *inspect.Inspector {
	return s.trees[s.current]
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if s.Execute(line) {
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "ls", "list":
		s.cmdList(args)

	case "show", "s":
		s.cmdShow(args)

	case "add", "a":
		s.cmdAdd(args)

	case "clone":
		s.cmdClone(args)

	case "bind", "b":
		s.cmdBind(args)

	case "check", "c":
		s.cmdCheck()

	case "trees":
		s.cmdTrees()

	case "use":
		s.cmdUse(args)

	case "kinds":
		fmt.Fprint(s.out, s.formatter.FormatKinds())

	case "save":
		s.cmdSave(args)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Model Commands:
  Inspection:
    ls [path]                        - List direct subfeatures
    show [path]                      - Show a subtree with placements
    check                            - Report unplaced required features
    kinds                            - List constructible kinds

  Editing:
    add <parent> <kind> <name> [joint]  - Add a new feature
    add <parent> like <path> <name>     - Copy an existing feature
    bind <path> <value...>              - Bind a placement value
    clone <path>                        - Clone a subtree into a new tree

  Trees:
    trees                            - List open trees
    use <n>                          - Switch to tree n
    save <file>                      - Save a snapshot of the current tree

  General:
    help                             - Show this help
    quit                             - Exit shell

  Path Format:
    root/name/... or root/#index/... - e.g., arm/bicep/massMeasure or arm/#2/#0`)
}

func (s *Shell) pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return s.Current().Root().Name()
}

// cmdList handles the ls command.
func (s *Shell) cmdList(args []string) {
	info, err := s.Current().InspectFeature(s.pathArg(args))
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(info.Subfeatures) == 0 {
		fmt.Fprintln(s.out, "  (no subfeatures)")
		return
	}
	for i := range info.Subfeatures {
		fmt.Fprintln(s.out, s.formatter.Indent(1, s.formatter.FormatFeatureLine(&info.Subfeatures[i])))
	}
}

// cmdShow handles the show command.
func (s *Shell) cmdShow(args []string) {
	if len(args) == 0 {
		fmt.Fprint(s.out, s.formatter.FormatTree(s.Current().InspectTree()))
		return
	}

	f, err := s.Current().Resolve(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	sub := inspect.NewInspector(f, s.Current().Binder())
	info := sub.InspectTree().Root
	fmt.Fprint(s.out, s.formatter.FormatFeature(&info))
}

// cmdAdd handles the add command.
func (s *Shell) cmdAdd(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.out, "Usage: add <parent> <kind> <name> [joint] | add <parent> like <path> <name>")
		return
	}

	var (
		f   *feature.Feature
		err error
	)
	if strings.EqualFold(args[1], "like") {
		if len(args) < 4 {
			fmt.Fprintln(s.out, "Usage: add <parent> like <path> <name>")
			return
		}
		f, err = s.Current().AddLike(args[0], args[2], args[3])
	} else {
		var opts []feature.Option
		if len(args) > 3 {
			jt, perr := kinematics.Parse(args[3])
			if perr != nil {
				fmt.Fprintf(s.out, "Error: %v\n", perr)
				return
			}
			opts = append(opts, feature.WithKinematics(jt))
		}
		f, err = s.Current().AddKind(args[0], args[1], args[2], opts...)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Added %s [%d] : %s\n", f.Path(), f.Index(), f.TypeName())
}

// cmdClone handles the clone command.
func (s *Shell) cmdClone(args []string) {
	f, err := s.Current().Resolve(s.pathArg(args))
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	c := f.Clone(s.opts...)
	s.trees = append(s.trees, inspect.NewInspector(c, nil))
	s.current = len(s.trees) - 1
	fmt.Fprintf(s.out, "Cloned %s into tree %d (%s)\n", f.Path(), s.current, c.Tree().ID())
}

// cmdBind handles the bind command.
func (s *Shell) cmdBind(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: bind <path> <value...>")
		return
	}
	v, err := s.Current().Bind(args[0], strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Bound %s = %s\n", args[0], s.formatter.FormatValue(v))
}

// cmdCheck handles the check command.
func (s *Shell) cmdCheck() {
	fmt.Fprintln(s.out, strings.TrimRight(s.formatter.FormatCheck(s.Current().Check()), "\n"))
}

// cmdTrees handles the trees command.
func (s *Shell) cmdTrees() {
	for i, insp := range s.trees {
		marker := " "
		if i == s.current {
			marker = "*"
		}
		root := insp.Root()
		fmt.Fprintf(s.out, "%s %d: %s (%s, %d features)\n", marker, i, root.Name(), root.Tree().ID(), root.Tree().Len())
	}
}

// cmdUse handles the use command.
func (s *Shell) cmdUse(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: use <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n >= len(s.trees) {
		fmt.Fprintf(s.out, "Error: no tree %s\n", args[0])
		return
	}
	s.current = n
	fmt.Fprintf(s.out, "Using tree %d (%s)\n", n, s.Current().Root().Name())
}

// cmdSave handles the save command.
func (s *Shell) cmdSave(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: save <file>")
		return
	}
	store := persistence.NewSnapshotStore(args[0])
	snap := persistence.Capture(s.Current().Root(), s.Current().Binder())
	if err := store.Save(snap); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Saved %d features to %s\n", len(snap.Nodes), args[0])
}
