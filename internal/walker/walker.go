package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrIO wraps every failure to read a directory.
var ErrIO = errors.New("walker: directory not readable")

// Entry is one visible child of a listed directory.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// Ext returns the extension without the leading dot ("" when there is none).
func (e Entry) Ext() string {
	return strings.TrimPrefix(filepath.Ext(e.Name), ".")
}

// List returns the immediate children of dir sorted by name.
//
// Dot-prefixed entries are always dropped. skipExtensions is matched
// exactly (case-sensitive, no dot) against the final extension, and
// skipNames against the base name.
func List(dir string, skipExtensions []string, skipNames ...string) ([]Entry, error) {
	// os.ReadDir already sorts by filename.
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIO, dir, err)
	}

	skipExt := toSet(skipExtensions)
	skipName := toSet(skipNames)

	out := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		e := Entry{
			Name:  name,
			Path:  filepath.Join(dir, name),
			IsDir: isDir(dir, de),
		}
		if _, ok := skipExt[e.Ext()]; ok && e.Ext() != "" {
			continue
		}
		if _, ok := skipName[name]; ok {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// isDir follows symlinks so a linked event or talk folder still counts.
func isDir(parent string, de os.DirEntry) bool {
	if de.Type()&os.ModeSymlink == 0 {
		return de.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, de.Name()))
	if err != nil {
		return false
	}
	return info.IsDir()
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
