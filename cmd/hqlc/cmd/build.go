package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hqlc/hql/internal/config"
	"github.com/hqlc/hql/internal/diag"
	"github.com/hqlc/hql/internal/resolver"
	"github.com/hqlc/hql/pkg/hql"
	"github.com/spf13/cobra"
)

var (
	buildEval      string
	buildOutput    string
	buildNoHelpers bool
	buildJSONDiag  bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile an HQL file to JavaScript",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildEval, "eval", "e", "", "compile inline code instead of reading from file")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file (default: stdout)")
	buildCmd.Flags().BoolVar(&buildNoHelpers, "no-helpers", false, "omit the helper prelude (host supplies the shims)")
	buildCmd.Flags().BoolVar(&buildJSONDiag, "json-diagnostics", false, "print diagnostics as JSON instead of human-readable text")
}

func runBuild(cmd *cobra.Command, args []string) error {
	var file string
	if len(args) == 1 {
		file = args[0]
	}
	source, filename, err := readSource(file, buildEval)
	if err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", configPath, err)
		}
		cfg = *loaded
	}

	root := "."
	if file != "" {
		root = filepath.Dir(file)
	}
	fileResolver := resolver.FileResolver{Root: root}

	opts := []hql.Option{
		hql.WithFilename(filename),
		hql.WithEmitHelpers(cfg.EmitHelpers && !buildNoHelpers),
		hql.WithImportResolver(func(specifier string) (hql.ImportResolution, error) {
			if mapped, ok := cfg.Imports[specifier]; ok {
				return hql.ImportResolution{Kind: hql.ImportPassthrough, Payload: mapped}, nil
			}
			res, err := fileResolver.Resolve(specifier)
			return hql.ImportResolution{Kind: hql.ImportKind(res.Kind), Payload: res.Payload}, err
		}),
	}
	if cfg.RecursionLimit > 0 {
		opts = append(opts, hql.WithRecursionLimit(cfg.RecursionLimit))
	}
	if cfg.IterationLimit > 0 {
		opts = append(opts, hql.WithIterationLimit(cfg.IterationLimit))
	}

	compiler := hql.New(opts...)
	result, err := compiler.Compile(context.Background(), source)
	if err != nil {
		printDiagnostics(result.Diagnostics)
		return err
	}

	if buildOutput == "" {
		fmt.Println(result.Code)
		return nil
	}
	return os.WriteFile(buildOutput, []byte(result.Code), 0o644)
}

func printDiagnostics(diags []diag.Diagnostic) {
	if buildJSONDiag {
		data, err := diag.ToJSON(diags)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode diagnostics: %v\n", err)
			return
		}
		fmt.Fprintln(os.Stderr, string(data))
		return
	}
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Format(true))
	}
}
