package cmd

import (
	"github.com/hqlc/hql/internal/reader"
	"github.com/spf13/cobra"
)

var readEval string

var readCmd = &cobra.Command{
	Use:   "read [file]",
	Short: "Tokenize and parse an HQL file, printing the surface AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().StringVarP(&readEval, "eval", "e", "", "parse inline code instead of reading from file")
}

func runRead(_ *cobra.Command, args []string) error {
	var file string
	if len(args) == 1 {
		file = args[0]
	}
	source, _, err := readSource(file, readEval)
	if err != nil {
		return err
	}

	nodes, err := reader.Read(source)
	if err != nil {
		exitWithError("%v", err)
		return err
	}
	printForms(nodes)
	return nil
}
