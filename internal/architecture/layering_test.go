package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "studydesk/internal/modules/"

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, modulePrefix) {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

// importsLayer matches layer as a whole path segment run, with or without
// a trailing package path.
func importsLayer(path, layer string) bool {
	return strings.Contains(path, "/"+layer+"/") || strings.HasSuffix(path, "/"+layer)
}

func isPortIn(path string) bool { return importsLayer(path, "port/in") }

func isDTO(path string) bool { return importsLayer(path, "dto") }

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, modulePrefix+module+"/")
	if !sameModule {
		return !isPortIn(importPath) && !isDTO(importPath)
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return importsLayer(importPath, "adapter")
	case "service":
		return importsLayer(importPath, "adapter") || importsLayer(importPath, "usecase")
	case "domain", "port/out":
		return importsLayer(importPath, "adapter") || importsLayer(importPath, "usecase") || importsLayer(importPath, "service")
	case "dto", "port/in":
		return !isDTO(importPath)
	default:
		return false
	}
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	err := filepath.WalkDir(filepath.Join("..", "platform"), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			if strings.Contains(strings.Trim(imp.Path.Value, `"`), modulePrefix) {
				t.Fatalf("platform package %s imports a module: %s", filepath.ToSlash(path), imp.Path.Value)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk platform: %v", err)
	}
}
