package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0-dev"
)

var rootCmd = &cobra.Command{
	Use:   "hqlc",
	Short: "HQL compiler",
	Long: `hqlc compiles HQL, a Lisp-family surface syntax, to JavaScript.

Each subcommand stops the pipeline after one stage:
  read   - tokenize and parse, print the surface AST
  expand - print the macro-expanded AST
  lower  - print the IR
  build  - run the full pipeline and emit JavaScript`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("config", "", "path to hql.config.yaml (default: none)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
