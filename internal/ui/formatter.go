package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"unishark/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

var (
	suiteColor  = color.New(color.FgGreen, color.Bold)
	moduleColor = color.New(color.FgCyan)
	classColor  = color.New(color.FgYellow)
	dimColor    = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed)
)

// PrintSelections prints each resolved suite with its test count and, when showTests is set, its tests as a
// module → class → method tree.
func (f *Formatter) PrintSelections(selections []*domain.SuiteSelection, showTests bool) {
	total := 0
	for _, sel := range selections {
		total += len(sel.Tests)
	}
	suiteColor.Fprintf(f.out, "Resolved %d test(s) in %d suite(s):\n", total, len(selections))

	for i, sel := range selections {
		isLast := i == len(selections)-1
		connector, indent := "├── ", "│   "
		if isLast {
			connector, indent = "└── ", "    "
		}

		fmt.Fprintf(f.out, "%s%s %s\n", connector, suiteColor.Sprint(sel.Name),
			dimColor.Sprintf("(package: %s, max_workers: %d, tests: %d)", sel.Package, sel.MaxWorkers, len(sel.Tests)))

		if !showTests {
			continue
		}
		if len(sel.Tests) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, errorColor.Sprint("(no tests selected)"))
			continue
		}
		f.printTreeNode(NewTestTree(sel.Tests.Sorted()), indent)

		if !isLast {
			fmt.Fprintln(f.out, "│")
		}
	}
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	children := node.Sorted()

	for i, child := range children {
		connector, indent := "├── ", "│   "
		if i == len(children)-1 {
			connector, indent = "└── ", "    "
		}

		switch child.Kind {
		case KindModule:
			fmt.Fprintf(f.out, "%s%s%s\n", prefix, connector, moduleColor.Sprint(child.Name))
		case KindClass:
			fmt.Fprintf(f.out, "%s%s%s\n", prefix, connector, classColor.Sprint(child.Name))
		default:
			fmt.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		}

		f.printTreeNode(child, prefix+indent)
	}
}

// PrintManifestStats displays the metadata of a saved manifest as a table
func (f *Formatter) PrintManifestStats(manifest *domain.Manifest) {
	meta := manifest.Meta

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Config", meta.ConfigPath)
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	f.row("Suites", meta.Suites)
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	f.row("Selected Tests", meta.TotalTests)
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	f.row("Timestamp", meta.Timestamp)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")
}

func (f *Formatter) row(label string, value any) {
	fmt.Fprintf(f.out, "│ %-31s │ %-27v │\n", label, value)
}

// PrintErrors lists configuration errors, one per line. A multierror is expanded into its parts.
func (f *Formatter) PrintErrors(err error) {
	if err == nil {
		return
	}

	var errs []error
	if merr, ok := err.(*multierror.Error); ok {
		errs = merr.WrappedErrors()
	} else {
		errs = []error{err}
	}

	errorColor.Fprintf(f.out, "✗ %d configuration error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(f.out, "  - %s\n", strings.TrimSpace(e.Error()))
	}
}

// PrintValid reports a configuration without errors
func (f *Formatter) PrintValid(suites int) {
	suiteColor.Fprintf(f.out, "✓ Configuration is valid (%d suite(s)).\n", suites)
}
