// Package corelib embeds stub sources for the parts of java.lang, java.io
// and java.util that programs resolved by javafront may refer to. The stubs
// declare signatures only; most methods are native.
package corelib

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed java
var sources embed.FS

// Prefix is prepended to stub paths so diagnostics in library units are
// distinguishable from user files.
const Prefix = "<corelib>/"

// Source is one embedded compilation unit.
type Source struct {
	Path string
	Text []byte
}

// FS returns the embedded stub tree rooted at the java directory's parent.
func FS() fs.FS {
	return sources
}

// Files returns every stub source ordered by path.
func Files() ([]Source, error) {
	var result []Source
	err := fs.WalkDir(sources, "java", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".java" {
			return nil
		}
		text, err := sources.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		result = append(result, Source{Path: Prefix + p, Text: text})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result, nil
}

// Packages returns the dotted names of the packages the stubs declare.
func Packages() []string {
	seen := map[string]bool{}
	fs.WalkDir(sources, "java", func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && path.Ext(p) == ".java" {
			seen[strings.ReplaceAll(path.Dir(p), "/", ".")] = true
		}
		return nil
	})
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
