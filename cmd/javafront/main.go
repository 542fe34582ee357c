package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/javafront/classfile"
	"github.com/dhamidi/javafront/config"
	"github.com/dhamidi/javafront/format"
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/corelib"
	"github.com/dhamidi/javafront/java/resolve"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// errFailed is returned after diagnostics have already been printed.
var errFailed = errors.New("resolution failed")

type globalFlags struct {
	debug      bool
	format     string
	configPath string
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "javafront [flags] <file.java>...",
		Short:         "Resolve names and types in Java source files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return resolveFiles(cfg, args)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "log visitor dispatch and stage transitions")
	rootCmd.PersistentFlags().StringVarP(&flags.format, "format", "f", "text", "output format (text, json, java)")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: javafront.yaml found from the working directory)")

	rootCmd.AddCommand(newRenameCmd(&flags))
	rootCmd.AddCommand(newLSPCmd(&flags))
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "javafront:", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags set on the
// command line over it.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = flags.format
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = flags.debug
	}
	setupLogging(cfg.Debug)
	return cfg, nil
}

func setupLogging(debug bool) {
	if debug {
		commonlog.Configure(2, nil)
		ast.SetTrace(true)
		return
	}
	commonlog.Configure(0, nil)
}

// contextOptions translates cfg into options for resolve.NewContext.
func contextOptions(cfg *config.Config) ([]resolve.Option, error) {
	opts := []resolve.Option{
		resolve.WithCorePackage(cfg.CorePackage),
		resolve.WithImplicitImports(cfg.ImplicitImports...),
	}
	files, err := cfg.LibraryFiles()
	if err != nil {
		return nil, err
	}
	var sources []corelib.Source
	var classes []*classfile.ClassFile
	for _, path := range files {
		switch filepath.Ext(path) {
		case ".class":
			cf, err := classfile.ParseFile(path)
			if err != nil {
				return nil, err
			}
			classes = append(classes, cf)
			continue
		case ".jar":
			jar, err := classfile.ReadJar(path)
			if err != nil {
				return nil, err
			}
			classes = append(classes, jar...)
			continue
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read library %s: %w", path, err)
		}
		sources = append(sources, corelib.Source{Path: path, Text: text})
	}
	if len(sources) > 0 {
		opts = append(opts, resolve.WithLibrary(sources...))
	}
	if len(classes) > 0 {
		opts = append(opts, resolve.WithClassFiles(classes...))
	}
	return opts, nil
}

func resolveFiles(cfg *config.Config, paths []string) error {
	opts, err := contextOptions(cfg)
	if err != nil {
		return err
	}
	ctx, err := resolve.NewContext(opts...)
	if err != nil {
		return err
	}
	enc, err := format.New(cfg.Format, os.Stdout, ctx.Props)
	if err != nil {
		return err
	}

	for _, path := range paths {
		// Load errors are reported with the other diagnostics.
		ctx.Load(path)
	}
	resolved, _ := ctx.Resolve()
	ctx.Number()

	for _, unit := range resolved {
		if err := enc.Encode(unit); err != nil {
			return fmt.Errorf("encode %s: %w", unit.File, err)
		}
	}

	diags := ctx.Diagnostics()
	printDiagnostics(os.Stderr, diags)
	if len(diags) > 0 {
		return errFailed
	}
	return nil
}
