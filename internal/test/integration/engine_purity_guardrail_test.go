//go:build integration
// +build integration

package integration

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// enginePackages hold the probability engine. They resolve rolls from a seed
// and a catalog and nothing else, so every recorded outcome stays replayable
// without a database or a transport in the loop.
func enginePackages() []string {
	return []string{
		"internal/catalog",
		"internal/creature",
		"internal/random",
		"internal/hatchery",
		"internal/arena",
		"internal/fusion",
	}
}

func forbiddenEngineImportPrefixes() []string {
	return []string{
		"database/sql",
		"net/http",
		"github.com/modelcontextprotocol/go-sdk",
		"google.golang.org/grpc",
		"modernc.org/sqlite",
		"github.com/emberhatch/menagerie/internal/ledger",
		"github.com/emberhatch/menagerie/internal/mcp",
	}
}

func TestEnginePackagesDoNotImportTransportOrStorage(t *testing.T) {
	root := integrationRepoRoot(t)
	var violations []string

	for _, pkg := range enginePackages() {
		err := filepath.WalkDir(filepath.Join(root, filepath.FromSlash(pkg)), func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(path, ".go") {
				return nil
			}

			fset := token.NewFileSet()
			file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
			if err != nil {
				return err
			}
			for _, spec := range file.Imports {
				importPath, err := strconv.Unquote(spec.Path.Value)
				if err != nil {
					return err
				}
				for _, prefix := range forbiddenEngineImportPrefixes() {
					if importPath != prefix && !strings.HasPrefix(importPath, prefix+"/") {
						continue
					}
					rel, err := filepath.Rel(root, path)
					if err != nil {
						return err
					}
					violations = append(violations, filepath.ToSlash(rel)+" imports "+importPath)
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("scan %s imports: %v", pkg, err)
		}
	}

	if len(violations) > 0 {
		t.Fatalf("engine packages must stay free of transport and storage imports:\n- %s", strings.Join(violations, "\n- "))
	}
}

func TestSQLDriverImportsStayInTheStorageLayer(t *testing.T) {
	allowedDirs := []string{
		"internal/ledger/sqlite",
		"internal/platform/storage/sqlitemigrate",
	}
	driverPrefixes := []string{
		"database/sql",
		"modernc.org/sqlite",
	}

	root := integrationRepoRoot(t)
	var violations []string

	for _, top := range []string{"internal", "cmd"} {
		err := filepath.WalkDir(filepath.Join(root, top), func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(path, ".go") {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			for _, dir := range allowedDirs {
				if strings.HasPrefix(rel, dir+"/") {
					return nil
				}
			}

			fset := token.NewFileSet()
			file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
			if err != nil {
				return err
			}
			for _, spec := range file.Imports {
				importPath, err := strconv.Unquote(spec.Path.Value)
				if err != nil {
					return err
				}
				for _, prefix := range driverPrefixes {
					if importPath != prefix && !strings.HasPrefix(importPath, prefix+"/") {
						continue
					}
					violations = append(violations, rel+" imports "+importPath)
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("scan %s imports: %v", top, err)
		}
	}

	if len(violations) > 0 {
		t.Fatalf("SQL driver imports belong to the ledger storage layer:\n- %s", strings.Join(violations, "\n- "))
	}
}

func TestLedgerWritesGoThroughTheToolHandlers(t *testing.T) {
	config := &packages.Config{
		Mode:  packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedDeps,
		Tests: false,
		Dir:   integrationRepoRoot(t),
	}
	domainPkgs, err := packages.Load(config, "./internal/mcp/domain")
	if err != nil {
		t.Fatalf("load domain package: %v", err)
	}
	if packages.PrintErrors(domainPkgs) > 0 {
		t.Fatalf("domain package load errors")
	}
	if len(domainPkgs) == 0 {
		t.Fatal("domain package not found")
	}
	recorder := lookupInterface(t, domainPkgs[0], "Recorder")

	targetPkgs, err := packages.Load(config, "./internal/...", "./cmd/...")
	if err != nil {
		t.Fatalf("load target packages: %v", err)
	}
	if packages.PrintErrors(targetPkgs) > 0 {
		t.Fatalf("target package load errors")
	}

	var violations []string
	for _, pkg := range targetPkgs {
		if pkg.PkgPath == domainPkgs[0].PkgPath {
			continue
		}
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(node ast.Node) bool {
				call, ok := node.(*ast.CallExpr)
				if !ok {
					return true
				}
				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok || sel.Sel == nil || sel.Sel.Name != "RecordOutcome" {
					return true
				}
				receiverType := pkg.TypesInfo.TypeOf(sel.X)
				if receiverType == nil || !implementsRecorder(receiverType, recorder) {
					return true
				}
				position := pkg.Fset.Position(sel.Pos())
				violations = append(violations, fmt.Sprintf("%s: %s calls RecordOutcome", position.String(), pkg.PkgPath))
				return true
			})
		}
	}

	if len(violations) > 0 {
		formatted := make([]string, 0, len(violations))
		for _, violation := range violations {
			formatted = append(formatted, "- "+filepath.ToSlash(violation))
		}
		t.Fatalf("ledger writes outside the tool handlers bypass outcome recording rules:\n%s", strings.Join(formatted, "\n"))
	}
}

func lookupInterface(t *testing.T, pkg *packages.Package, name string) *types.Interface {
	t.Helper()

	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		t.Fatalf("interface %s not found in %s", name, pkg.PkgPath)
	}
	iface, ok := obj.Type().Underlying().(*types.Interface)
	if !ok {
		t.Fatalf("type %s is not an interface", name)
	}
	return iface
}

func implementsRecorder(typ types.Type, iface *types.Interface) bool {
	if typ == nil {
		return false
	}
	if types.Implements(typ, iface) {
		return true
	}
	return types.Implements(types.NewPointer(typ), iface)
}

func integrationRepoRoot(t *testing.T) string {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working dir: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			t.Fatal("go.mod not found")
		}
		wd = parent
	}
}
