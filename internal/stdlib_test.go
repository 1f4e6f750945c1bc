package stdlib_test

import (
	"go/build"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// extraAllowed lists, per package, the one non-stdlib import each is
// permitted beyond the standard library itself. internal/core may depend on
// internal/elements (its own tree model); internal/elements may depend on
// gopkg.in/yaml.v3 for Config, the teacher's own go.mod dependency (go.mod's
// "Core engine is stdlib-only; adapters may use external deps" comment was
// written against the teacher's internal/primitives, which never grew a
// Config loader — here that loader lives in internal/elements instead, so
// its one documented dependency moves with it). Everything else under
// internal/ (extensibility, production) is an adapter layer explicitly
// allowed to pull in third-party transport/storage/scripting libraries.
var extraAllowed = map[string]string{
	"core":     "statechartx/internal/elements",
	"elements": "gopkg.in/yaml.v3",
}

// TestStdlibOnlyCore walks internal/core's and internal/elements' own import
// lists (not go.mod, which necessarily lists every dependency the whole
// module uses anywhere, adapters included) and fails if either package
// imports anything beyond the standard library and its one documented
// extraAllowed exception.
func TestStdlibOnlyCore(t *testing.T) {
	for pkg := range extraAllowed {
		dir := filepath.Join(".", pkg)
		imports, err := collectImports(dir)
		if err != nil {
			t.Fatalf("collectImports(%s): %v", dir, err)
		}

		for _, imp := range imports {
			if isAllowed(pkg, imp) {
				continue
			}
			t.Errorf("internal/%s: non-stdlib import %q", pkg, imp)
		}
	}
}

func isAllowed(pkg, importPath string) bool {
	if importPath == extraAllowed[pkg] {
		return true
	}
	return isStdlib(importPath)
}

func isStdlib(importPath string) bool {
	p, err := build.Import(importPath, ".", build.FindOnly)
	if err != nil {
		return false
	}
	return p.Goroot
}

// collectImports parses every .go file directly under dir (no recursion)
// and returns the deduplicated set of import paths across all of them,
// source and test files alike.
func collectImports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	seen := map[string]bool{}
	var imports []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, imp := range f.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if seen[importPath] {
				continue
			}
			seen[importPath] = true
			imports = append(imports, importPath)
		}
	}
	return imports, nil
}
