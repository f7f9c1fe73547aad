package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"unishark/internal/errors"
	"unishark/internal/logging"
	"unishark/internal/registry"
)

var (
	// Matches:
	// - class UserTest extends TestCase
	// - final class UserTest extends \PHPUnit\Framework\TestCase
	// - abstract class BaseTest extends TestCase
	classPattern = regexp.MustCompile(`^\s*((?:(?:abstract|final|readonly)\s+)*)class\s+(\w+)(?:\s+extends\s+([\w\\]+))?`)

	// Matches:
	// - public function testCreateUser()
	// - function test_user_login()
	// - protected static function testSomething()
	// - final public function testSomething()
	methodPattern = regexp.MustCompile(`^\s*((?:(?:public|protected|private|static|final|abstract)\s+)*)function\s+(\w+)\s*\(`)

	stringLiteral = regexp.MustCompile(`'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`)
	segment       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)
)

// PHPSource imports PHP test sources statically. The module a.b.c is read from <root>/a/b/c.php; nothing is
// scanned or executed.
type PHPSource struct {
	root    string
	parents registry.Importer
	logger  *logrus.Entry

	mu        sync.Mutex
	importing map[string]bool
}

// SourceOption configures a PHPSource
type SourceOption func(*PHPSource)

// WithSourceLogger sets the logger that reports parent classes which cannot be found
func WithSourceLogger(logger *logrus.Entry) SourceOption {
	return func(p *PHPSource) {
		p.logger = logger
	}
}

// WithParentImporter sets where base classes declared in other files are looked up. Defaults to the source itself.
func WithParentImporter(importer registry.Importer) SourceOption {
	return func(p *PHPSource) {
		p.parents = importer
	}
}

// NewPHPSource creates a PHPSource rooted at root
func NewPHPSource(root string, opts ...SourceOption) *PHPSource {
	p := &PHPSource{
		root:      root,
		logger:    logging.Discard(),
		importing: make(map[string]bool),
	}
	p.parents = p
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// File returns the source file that holds the module at path
func (p *PHPSource) File(path string) string {
	return filepath.Join(p.root, filepath.Join(strings.Split(path, ".")...)+".php")
}

// Import implements registry.Importer. Base classes declared in other files are resolved through the parent
// importer; a module that is imported again while its own parents are being resolved only sees its own file.
func (p *PHPSource) Import(path string) (*registry.Module, error) {
	for _, part := range strings.Split(path, ".") {
		if !segment.MatchString(part) {
			return nil, errors.WithStackTrace(errors.ModuleNotFoundError{Module: path})
		}
	}

	file := p.File(path)
	content, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WithStackTrace(errors.ModuleNotFoundError{Module: path})
		}
		return nil, errors.Errorf("error reading file %s: %w", file, err)
	}

	mod := parsePHP(path, string(content))

	p.mu.Lock()
	busy := p.importing[path]
	p.importing[path] = true
	p.mu.Unlock()

	if busy {
		resolveTestCases(mod, nil, nil)
		return mod, nil
	}

	defer func() {
		p.mu.Lock()
		delete(p.importing, path)
		p.mu.Unlock()
	}()

	resolveTestCases(mod,
		func(cls *registry.Class) (bool, bool) {
			return p.lookupParent(path, cls)
		},
		func(cls *registry.Class) {
			p.logger.Warnf("Cannot find base class %s of %s.%s; treating it as a test case", cls.Parent, path, cls.Name)
		},
	)

	return mod, nil
}

// lookupParent finds the declared base of cls in another module and reports whether that base is a test case.
func (p *PHPSource) lookupParent(path string, cls *registry.Class) (testCase, found bool) {
	base := shortName(cls.Parent)

	for _, candidate := range parentModules(path, cls.Parent) {
		if candidate == path {
			continue
		}

		mod, err := p.parents.Import(candidate)
		if err != nil {
			if !registry.IsModuleNotFound(err) {
				p.logger.Debugf("Looking up base class %s in %s: %v", cls.Parent, candidate, err)
			}
			continue
		}

		if attr, ok := mod.Attr(base); ok {
			if parent, ok := attr.(*registry.Class); ok {
				return parent.TestCase, true
			}
		}
	}

	return false, false
}

// parentModules lists the modules that may declare parent, in lookup order: a file next to the module, then the
// namespace mapped onto directories as written, then with its root namespace lowercased (Tests\Foo in tests/Foo.php).
func parentModules(path, parent string) []string {
	segments := strings.Split(strings.Trim(parent, `\`), `\`)
	base := segments[len(segments)-1]

	sibling := base
	if i := strings.LastIndex(path, "."); i >= 0 {
		sibling = path[:i] + "." + base
	}

	lowered := append([]string{strings.ToLower(segments[0])}, segments[1:]...)

	var modules []string
	seen := make(map[string]bool)
	for _, candidate := range []string{sibling, strings.Join(segments, "."), strings.Join(lowered, ".")} {
		if !seen[candidate] {
			seen[candidate] = true
			modules = append(modules, candidate)
		}
	}
	return modules
}

// ParsePHP builds a module from PHP source. Functions declared directly in a class body become its methods; functions
// outside any class are module-level. A class is a test case when its base is a *TestCase class or, through a chain
// of parents declared in the same file, descends from one. Bases declared elsewhere are assumed to be test cases.
func ParsePHP(path string, content string) *registry.Module {
	mod := parsePHP(path, content)
	resolveTestCases(mod, nil, nil)
	return mod
}

func parsePHP(path string, content string) *registry.Module {
	mod := registry.NewModule(path)

	var (
		current    *registry.Class
		classDepth int
		opened     bool
		depth      int
		inComment  bool
		code       string
	)

	for i, raw := range strings.Split(content, "\n") {
		line := i + 1
		code, inComment = stripCode(raw, inComment)

		if current == nil {
			if match := classPattern.FindStringSubmatch(code); match != nil {
				current = mod.AddClass(&registry.Class{
					Name:     match[2],
					Abstract: hasModifier(match[1], "abstract"),
					Parent:   match[3],
					Line:     line,
				})
				classDepth = depth
				opened = false
			} else if match := methodPattern.FindStringSubmatch(code); match != nil {
				mod.AddFunc(&registry.Method{Name: match[2], Line: line})
			}
		} else if depth == classDepth+1 {
			if match := methodPattern.FindStringSubmatch(code); match != nil {
				current.AddMethod(&registry.Method{
					Name:   match[2],
					Static: hasModifier(match[1], "static"),
					Line:   line,
				})
			}
		}

		depth += strings.Count(code, "{") - strings.Count(code, "}")

		if current != nil {
			if strings.Contains(code, "{") {
				opened = true
			}
			if opened && depth <= classDepth {
				current = nil
			}
		}
	}

	return mod
}

// resolveTestCases sets TestCase on every class of mod. Parents declared in mod are followed directly; others are
// passed to external, which reports whether it found them. A parent nobody can find makes its child a test case and
// is passed to unresolved. Either function may be nil.
func resolveTestCases(
	mod *registry.Module,
	external func(cls *registry.Class) (testCase, found bool),
	unresolved func(cls *registry.Class),
) {
	const (
		visiting = iota + 1
		done
	)
	state := make(map[*registry.Class]int)

	var visit func(cls *registry.Class) bool
	visit = func(cls *registry.Class) bool {
		switch state[cls] {
		case visiting:
			return false
		case done:
			return cls.TestCase
		}
		state[cls] = visiting

		cls.TestCase = descends(cls, mod, visit, external, unresolved)
		state[cls] = done
		return cls.TestCase
	}

	for _, cls := range mod.Classes() {
		visit(cls)
	}
}

func descends(
	cls *registry.Class,
	mod *registry.Module,
	visit func(cls *registry.Class) bool,
	external func(cls *registry.Class) (bool, bool),
	unresolved func(cls *registry.Class),
) bool {
	if cls.Parent == "" {
		return false
	}

	base := shortName(cls.Parent)
	if strings.HasSuffix(base, "TestCase") {
		return true
	}

	if attr, ok := mod.Attr(base); ok {
		if parent, ok := attr.(*registry.Class); ok && parent != cls {
			return visit(parent)
		}
	}

	if external != nil {
		if testCase, found := external(cls); found {
			return testCase
		}
	}

	if unresolved != nil {
		unresolved(cls)
	}
	return true
}

// shortName strips the namespace from a class name
func shortName(name string) string {
	if i := strings.LastIndex(name, `\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

func hasModifier(modifiers, modifier string) bool {
	for _, field := range strings.Fields(modifiers) {
		if field == modifier {
			return true
		}
	}
	return false
}

// stripCode removes string literals and comments from a line so braces and keywords can be counted. inComment
// carries an open block comment across lines.
func stripCode(line string, inComment bool) (string, bool) {
	var b strings.Builder
	line = stringLiteral.ReplaceAllString(line, "''")

	for line != "" {
		if inComment {
			end := strings.Index(line, "*/")
			if end < 0 {
				return b.String(), true
			}
			line = line[end+2:]
			inComment = false
			continue
		}

		start := strings.Index(line, "/*")
		lineComment := indexLineComment(line)
		if lineComment >= 0 && (start < 0 || lineComment < start) {
			b.WriteString(line[:lineComment])
			return b.String(), false
		}
		if start < 0 {
			b.WriteString(line)
			return b.String(), false
		}

		b.WriteString(line[:start])
		line = line[start+2:]
		inComment = true
	}

	return b.String(), inComment
}

// indexLineComment finds a // or # comment. #[ starts an attribute, not a comment.
func indexLineComment(line string) int {
	idx := strings.Index(line, "//")
	for i := 0; i < len(line); i++ {
		if idx >= 0 && i >= idx {
			break
		}
		if line[i] == '#' && (i+1 >= len(line) || line[i+1] != '[') {
			return i
		}
	}
	return idx
}
