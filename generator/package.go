package generator

import (
	"bufio"
	"errors"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goaux/iter/bufioscanner"
	"github.com/goaux/stacktrace/v2"
)

// readPackageName returns the package of the Go files already in dir. When
// there are none it falls back to the directory name, and to "" when that is
// not an identifier either, leaving the choice to the Go printer.
func readPackageName(dir string) (string, error) {
	dir, err := stacktrace.Trace2(filepath.Abs(dir))
	if err != nil {
		return "", err
	}
	list, err := stacktrace.Trace2(os.ReadDir(dir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	for _, v := range list {
		name := v.Name()
		if !v.IsDir() && strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			if n, err := readPackage(filepath.Join(dir, name)); err == nil { // if NO error
				return n, nil
			}
		}
	}
	if n := reReplace.ReplaceAllString(filepath.Base(dir), "_"); token.IsIdentifier(n) {
		return n, nil
	}
	return "", nil
}

var reReplace = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func readPackage(file string) (string, error) {
	f, err := stacktrace.Trace2(os.Open(file))
	if err != nil {
		return "", err
	}
	defer f.Close()
	s := bufioscanner.New(bufio.NewScanner(f))
	for _, line := range s.Text() {
		line = strings.TrimSpace(line)
		m := rePackage.FindStringSubmatch(line)
		if len(m) >= 2 {
			return m[1], nil
		}
	}
	return "", errNotFound
}

var rePackage = regexp.MustCompile(`^package\s+([a-zA-Z][a-zA-Z0-9_]*)`)

var errNotFound = errors.New("not found")
