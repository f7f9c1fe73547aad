package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"unishark/internal/domain"
	"unishark/internal/naming"
)

// Browser displays a selection manifest as an interactive suite → module → class → method tree
type Browser struct{}

// NewBrowser creates a new Browser
func NewBrowser() *Browser {
	return &Browser{}
}

// nodeRef is attached to every tree node so the details pane can describe it
type nodeRef struct {
	suite *domain.ManifestSuite
	path  string
	kind  NodeKind
	tests int
}

// View runs the TUI until the user quits
func (b *Browser) View(manifest *domain.Manifest) error {
	app := tview.NewApplication()

	root := BuildTree(manifest)

	tree := tview.NewTreeView().
		SetRoot(root).
		SetCurrentNode(root)
	tree.SetBorder(true).SetTitle(" Suites ")

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	detailsView.SetBorder(true).SetTitle(" Details ")

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" %d suite(s), %d test(s) | ↑↓ to navigate, Enter to expand/collapse, q or Ctrl+C to exit ",
			manifest.Meta.Suites, manifest.Meta.TotalTests))

	updateDetails := func(node *tview.TreeNode) {
		detailsView.SetText(FormatDetails(manifest, node))
	}

	tree.SetChangedFunc(updateDetails)
	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		node.SetExpanded(!node.IsExpanded())
	})
	tree.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' || event.Rune() == 'Q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	updateDetails(root)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(tree, 0, 1, true).
		AddItem(detailsView, 0, 1, false)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(tree).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// BuildTree converts a manifest into tview nodes. Suites start expanded, everything below collapsed.
func BuildTree(manifest *domain.Manifest) *tview.TreeNode {
	root := tview.NewTreeNode(fmt.Sprintf("Suites (%d)", len(manifest.Suites))).
		SetColor(tcell.ColorGreen).
		SetReference(nodeRef{kind: KindRoot, tests: manifest.Meta.TotalTests})

	for i := range manifest.Suites {
		suite := &manifest.Suites[i]
		suiteNode := tview.NewTreeNode(fmt.Sprintf("%s (%d)", suite.Name, len(suite.Tests))).
			SetColor(tcell.ColorGreen).
			SetReference(nodeRef{suite: suite, kind: KindRoot, tests: len(suite.Tests)}).
			SetExpanded(true)

		addChildren(suiteNode, suite, NewTestTree(suite.Tests), "")
		root.AddChild(suiteNode)
	}

	return root
}

func addChildren(parent *tview.TreeNode, suite *domain.ManifestSuite, node *TreeNode, path string) {
	for _, child := range node.Sorted() {
		childPath := naming.Join(path, child.Name)

		text := child.Name
		var clr tcell.Color
		switch child.Kind {
		case KindModule:
			clr = tcell.ColorDarkCyan
			text = fmt.Sprintf("%s (%d)", child.Name, child.Leaves())
		case KindClass:
			clr = tcell.ColorYellow
			text = fmt.Sprintf("%s (%d)", child.Name, child.Leaves())
		default:
			clr = tcell.ColorWhite
		}

		n := tview.NewTreeNode(text).
			SetColor(clr).
			SetReference(nodeRef{suite: suite, path: childPath, kind: child.Kind, tests: child.Leaves()}).
			SetExpanded(false)
		parent.AddChild(n)

		addChildren(n, suite, child, childPath)
	}
}

// FormatDetails describes a node using tview color tags ([red], [cyan], etc.)
func FormatDetails(manifest *domain.Manifest, node *tview.TreeNode) string {
	var builder strings.Builder

	ref, ok := node.GetReference().(nodeRef)
	if !ok {
		return ""
	}

	if ref.suite == nil {
		fmt.Fprintf(&builder, "[cyan]Config:[white] %s\n", manifest.Meta.ConfigPath)
		fmt.Fprintf(&builder, "[cyan]Suites:[white] %d\n", manifest.Meta.Suites)
		fmt.Fprintf(&builder, "[cyan]Tests:[white] %d\n", manifest.Meta.TotalTests)
		fmt.Fprintf(&builder, "[cyan]Timestamp:[white] %s\n", manifest.Meta.Timestamp)
		return builder.String()
	}

	suite := ref.suite
	pkg := domain.Package(suite.Package)

	fmt.Fprintf(&builder, "[green]Suite:[white] %s\n", suite.Name)
	fmt.Fprintf(&builder, "[cyan]Package:[white] %s\n", pkg)
	fmt.Fprintf(&builder, "[cyan]Max workers:[white] %d\n", suite.MaxWorkers)
	fmt.Fprintf(&builder, "[cyan]Loaded cases:[white] %d of %d\n", suite.Loaded, len(suite.Tests))

	if ref.path == "" {
		return builder.String()
	}

	builder.WriteString("\n")
	switch ref.kind {
	case KindModule:
		fmt.Fprintf(&builder, "[yellow]Module:[white] %s\n", ref.path)
	case KindClass:
		fmt.Fprintf(&builder, "[yellow]Class:[white] %s\n", ref.path)
	case KindMethod:
		fmt.Fprintf(&builder, "[yellow]Test:[white] %s\n", ref.path)
	}
	if ref.kind != KindMethod {
		fmt.Fprintf(&builder, "[yellow]Tests:[white] %d\n", ref.tests)
	}

	return builder.String()
}
