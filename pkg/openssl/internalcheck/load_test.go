package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePattern = "github.com/coinbase/openssl-go/pkg/..."

func load(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, modulePattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if len(pkgs) == 0 {
		t.Fatal("no packages matched " + modulePattern)
	}
	return pkgs
}
