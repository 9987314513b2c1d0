package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/impass-go/impass/internal/directive"
	"github.com/impass-go/impass/internal/rewrite"
)

var (
	generateWrite bool
	generateList  bool
	generateJobs  int
)

func init() {
	generateCmd.Flags().BoolVarP(&generateWrite, "write", "w", false, "write results back to the source files instead of stdout")
	generateCmd.Flags().BoolVar(&generateList, "list", false, "list annotated functions without rewriting")
	generateCmd.Flags().IntVar(&generateJobs, "jobs", 0, "max files transformed in parallel (default: number of CPUs)")
}

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Rewrite annotated functions to their fail-fast form",
	Long: `generate scans the given files and directories for functions carrying the
//impass:fatal marker and rewrites each one: the body is wrapped in a thunk
passed to fatal.Do and the declared (T, error) outcome becomes T. Fragments
that fail validation are rejected with a structural error and left intact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}

		colorMode, _ := cmd.Flags().GetString("color")
		if colorMode == "" {
			colorMode = cfg.Output.Color
		}
		printer := newDiagPrinter(colorMode, cmd.OutOrStdout())

		jobs := generateJobs
		if jobs == 0 {
			jobs = cfg.Generate.Jobs
		}
		if jobs <= 0 {
			jobs = runtime.NumCPU()
		}

		if len(args) == 0 {
			args = []string{"."}
		}
		files, err := collectFiles(args, cfg.Generate.Exclude)
		if err != nil {
			return err
		}

		// Fragments transform independently and in any order; only the
		// per-file fan-out is concurrent.
		var failed atomic.Bool
		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(jobs)
		for _, path := range files {
			path := path
			g.Go(func() error {
				return processFile(printer, path, &failed)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if failed.Load() {
			return fmt.Errorf("one or more files failed to transform")
		}
		return nil
	},
}

func processFile(printer *diagPrinter, path string, failed *atomic.Bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		printer.errorf("%s: %v", path, err)
		failed.Store(true)
		return nil
	}
	if !bytes.Contains(src, []byte(directive.Marker)) {
		return nil
	}

	if generateList {
		return listAnnotated(printer, path, src)
	}

	out, changed, errs := rewrite.Source(path, src)
	if len(errs) > 0 {
		for _, serr := range errs {
			printer.structural(serr)
		}
		failed.Store(true)
		return nil
	}
	if !changed {
		return nil
	}

	if !generateWrite {
		return printer.emit(out)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, info.Mode().Perm())
}

func listAnnotated(printer *diagPrinter, path string, src []byte) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return err
	}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !directive.Annotated(file, fn) {
			continue
		}
		printer.listf("%s: %s\n", fset.Position(fn.Pos()), fn.Name.Name)
	}
	return nil
}

// collectFiles expands the path arguments into the list of candidate .go
// files, skipping vendor trees, hidden and underscore-prefixed directories,
// and anything matching the exclude globs.
func collectFiles(args, exclude []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] && !excluded(path, exclude) {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != arg && (name == "vendor" || name == "testdata" ||
					strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(name, ".go") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func excluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range exclude {
		if ok, err := filepath.Match(pattern, slashed); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
