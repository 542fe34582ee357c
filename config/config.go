// Package config reads javafront.yaml, the optional per-project settings
// file. It is found by walking up from the working directory:
//
//	core_package: java.lang
//	implicit_imports: [java.lang, java.util]
//	library:
//	  - stubs/
//	  - vendor/Extra.java
//	format: json
//	debug: true
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileNames are the names FindConfig looks for, in order.
var FileNames = []string{"javafront.yaml", "javafront.yml"}

type Config struct {
	// CorePackage holds Object and String. Defaults to java.lang.
	CorePackage string `yaml:"core_package,omitempty"`

	// ImplicitImports are imported on demand into every unit. Defaults to
	// the core package.
	ImplicitImports []string `yaml:"implicit_imports,omitempty"`

	// Library lists .java, .class and .jar files, or directories holding
	// them, loaded as library types.
	// Relative entries are relative to the config file.
	Library []string `yaml:"library,omitempty"`

	// Format names the output encoder: text, json or java.
	Format string `yaml:"format,omitempty"`

	Debug bool `yaml:"debug,omitempty"`

	// Dir is the directory of the file the config was read from.
	Dir string `yaml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	if cfg.Dir, err = filepath.Abs(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("resolving directory of %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses config content. path is used only in error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig looks for a config file in dir and its parents. It returns
// the empty string and a nil error when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Discover loads the config found from dir, or the defaults.
func Discover(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate(path string) error {
	if c.Format != "" && c.Format != "text" && c.Format != "json" && c.Format != "java" {
		return fmt.Errorf("%s: format %q is not one of text, json, java", path, c.Format)
	}
	for _, name := range append([]string{c.CorePackage}, c.ImplicitImports...) {
		if !validPackageName(name) {
			return fmt.Errorf("%s: %q is not a package name", path, name)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.CorePackage == "" {
		c.CorePackage = "java.lang"
	}
	if len(c.ImplicitImports) == 0 {
		c.ImplicitImports = []string{c.CorePackage}
	}
	if c.Format == "" {
		c.Format = "text"
	}
}

// validPackageName accepts the empty string, which setDefaults replaces.
func validPackageName(name string) bool {
	if name == "" {
		return true
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" || strings.ContainsAny(part, " \t/\\*") {
			return false
		}
	}
	return true
}

// LibraryFiles expands the library entries into source and class file
// paths, sorted within each directory.
func (c *Config) LibraryFiles() ([]string, error) {
	var files []string
	for _, entry := range c.Library {
		path := entry
		if !filepath.IsAbs(path) && c.Dir != "" {
			path = filepath.Join(c.Dir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("library %s: %w", entry, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && libraryExts[filepath.Ext(p)] {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("library %s: %w", entry, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// libraryExts are the file kinds collected from library directories.
var libraryExts = map[string]bool{
	".java":  true,
	".class": true,
	".jar":   true,
}
