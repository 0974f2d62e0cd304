//go:build mage

// Package main contains Mage build targets for extract-geometry developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "extract-geometry"
	cmdPkg     = "./cmd/extract-geometry"
	secretsDir = ".secrets"
	configFile = "extract-geometry.yaml"
	sampleDSN  = "file:geometry.db"
	sampleYAML = "internal/pipeline/testdata/model.yaml"
)

const defaultConfig = `database:
  dialect: sqlite3
  creation_info: true
model:
  path: ` + sampleYAML + `
  length_unit: mm
  precision: 0
log:
  level: info
  format: text
`

// Init writes a starter config file and a .secrets/database-dsn pointing at
// a local SQLite file. Existing files are left alone.
func Init() error {
	if err := os.MkdirAll(secretsDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", secretsDir, err)
	}
	for path, content := range map[string]string{
		configFile:                                defaultConfig,
		filepath.Join(secretsDir, "database-dsn"): sampleDSN + "\n",
	} {
		if _, err := os.Stat(path); err == nil {
			fmt.Println("   exists:", path)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("   wrote:", path)
	}
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version := "dev"
	if v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && v != "" {
		version = v
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests. The cgo SQLite driver is linked in, so
// CGO_ENABLED must be on.
func Test() error {
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs Vet and Test.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Sample builds the CLI, creates the schema in the local sink and exports
// the bundled sample model.
func Sample() error {
	mg.Deps(Build, Init)
	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "schema", "create"); err != nil {
		fmt.Println("   schema already present")
	}
	return sh.RunV(bin, "export")
}

// Stats prints non-blank Go line counts per top-level package directory,
// split into production and test code.
func Stats() error {
	prod := map[string]int{}
	tests := map[string]int{}
	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || (d.Name() != "." && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			tests[filepath.Dir(path)] += n
		} else {
			prod[filepath.Dir(path)] += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(prod))
	for d := range prod {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	var totalProd, totalTest int
	for _, d := range dirs {
		fmt.Printf("%-32s %6d %6d\n", d, prod[d], tests[d])
		totalProd += prod[d]
		totalTest += tests[d]
	}
	fmt.Printf("%-32s %6d %6d\n", "total", totalProd, totalTest)
	return nil
}

// countLines counts non-blank lines in a file.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		if strings.TrimSpace(s.Text()) != "" {
			n++
		}
	}
	return n, s.Err()
}
