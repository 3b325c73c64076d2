package internalcheck

import (
	"fmt"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const backendPkg = "github.com/coinbase/openssl-go/pkg/openssl/internal/backend"

// TestCgoConfinedToBackend checks every source file, including files
// excluded by the current build tags, so a stray import "C" is caught on
// any platform.
func TestCgoConfinedToBackend(t *testing.T) {
	pkgs := load(t, packages.NeedName|packages.NeedFiles)

	fset := token.NewFileSet()
	var findings []string
	for _, pkg := range pkgs {
		if pkg.PkgPath == backendPkg {
			continue
		}
		files := append(append([]string{}, pkg.GoFiles...), pkg.IgnoredFiles...)
		for _, name := range files {
			if !strings.HasSuffix(name, ".go") {
				continue
			}
			f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", name, err)
			}
			for _, imp := range f.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				if err == nil && path == "C" {
					findings = append(findings, fmt.Sprintf("%s: import \"C\" outside %s", fset.Position(imp.Pos()), backendPkg))
				}
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("cgo boundary violation:\n%s", strings.Join(findings, "\n"))
	}
}
