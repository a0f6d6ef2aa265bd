package cmd

import (
	"github.com/hqlc/hql/internal/macro"
	"github.com/hqlc/hql/internal/reader"
	"github.com/spf13/cobra"
)

var expandEval string

var expandCmd = &cobra.Command{
	Use:   "expand [file]",
	Short: "Macro-expand an HQL file, printing the expanded AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().StringVarP(&expandEval, "eval", "e", "", "expand inline code instead of reading from file")
}

func runExpand(_ *cobra.Command, args []string) error {
	var file string
	if len(args) == 1 {
		file = args[0]
	}
	source, _, err := readSource(file, expandEval)
	if err != nil {
		return err
	}

	nodes, err := reader.Read(source)
	if err != nil {
		exitWithError("%v", err)
		return err
	}
	expanded, err := macro.Expand(nodes, macro.DefaultLimits())
	if err != nil {
		exitWithError("%v", err)
		return err
	}
	printForms(expanded)
	return nil
}
