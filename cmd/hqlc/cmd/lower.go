package cmd

import (
	"fmt"

	"github.com/hqlc/hql/internal/lower"
	"github.com/hqlc/hql/internal/macro"
	"github.com/hqlc/hql/internal/reader"
	"github.com/spf13/cobra"
)

var lowerEval string

var lowerCmd = &cobra.Command{
	Use:   "lower [file]",
	Short: "Lower an HQL file to IR, printing the IR tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLower,
}

func init() {
	rootCmd.AddCommand(lowerCmd)
	lowerCmd.Flags().StringVarP(&lowerEval, "eval", "e", "", "lower inline code instead of reading from file")
}

func runLower(_ *cobra.Command, args []string) error {
	var file string
	if len(args) == 1 {
		file = args[0]
	}
	source, _, err := readSource(file, lowerEval)
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
	program, err := lower.Lower(expanded)
	if err != nil {
		exitWithError("%v", err)
		return err
	}
	for _, stmt := range program.Body {
		fmt.Printf("%#v\n", stmt)
	}
	return nil
}
