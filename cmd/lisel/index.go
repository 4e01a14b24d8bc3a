package main

import (
	"log"
	"os"

	"github.com/fractalqb/lisel"
	"github.com/spf13/cobra"
)

func init() {
	indexCmd.Run = makeIndex
	indexCmd.Flags().StringVarP(&indexCmd.pattern, "index-regex", "e", "",
		"Index the target lines matching this expression (default: any non-empty line)")
	indexCmd.Flags().BoolVar(&indexCmd.single, "single", false,
		"Write one index line per matching target line instead of ranges")
	rootCmd.AddCommand(&indexCmd.Command)
}

var indexCmd = struct {
	cobra.Command
	pattern string
	single  bool
}{
	Command: cobra.Command{
		Use:   "index [flags] [TARGET]",
		Short: "Derive a line number index from a target text",
		Long: `Derive a line number index from a target text.

Each run of consecutive target lines matching the expression becomes one
index line. The result is accepted back by 'lisel -n' against the same
target. Without a file the target is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
	},
}

func makeIndex(cmd *cobra.Command, files []string) {
	target := os.Stdin
	if len(files) > 0 {
		target = openFile(files[0])
		defer target.Close()
	}
	mi := lisel.MakeIndex{Pattern: indexCmd.pattern, Single: indexCmd.single}
	if err := mi.Text(os.Stdout, target); err != nil {
		log.Fatal(err)
	}
}
