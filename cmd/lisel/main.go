// A command line tool to select lines from a target text by an index text
package main

import (
	"io"
	"log"
	"os"

	"github.com/fractalqb/lisel"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = struct {
	cobra.Command
	swap    bool
	pattern string
	invert  bool
	numbers bool
	debug   bool
}{
	Command: cobra.Command{
		Use:   "lisel [flags] INDEX [TARGET]",
		Short: "Select lines from a target text by an index text",
		Long: `Select lines from a target text by an index text.

With two files the first is the index and the second is the target. With one
file that file is the index and the target is read from standard input. The
index either selects target lines positionally, emitting target line i when
index line i matches a regular expression, or with -n it holds strictly
increasing target line ranges:

   7     target line 7
   7,9   target lines 7 up to and including 9
   7,    target line 7 to the end of the target
   ,9    start of the target up to line 9

Selected lines are written to standard output in target order.`,
		Args: cobra.RangeArgs(1, 2),
	},
}

func init() {
	rootCmd.Run = selectLines
	rootCmd.Flags().BoolVarP(&rootCmd.swap, "swap", "s", false,
		"Swap the index and target role of the inputs")
	rootCmd.Flags().StringVarP(&rootCmd.pattern, "index-regex", "e", "",
		"Match index lines against this expression (default: any non-empty line)")
	rootCmd.Flags().BoolVarP(&rootCmd.invert, "invert", "v", false,
		"Emit the target lines whose index line does not match")
	rootCmd.Flags().BoolVarP(&rootCmd.numbers, "line-numbers", "n", false,
		"Read the index as strictly increasing target line ranges")
	rootCmd.MarkFlagsMutuallyExclusive("index-regex", "line-numbers")
	rootCmd.PersistentFlags().BoolVar(&rootCmd.debug, "debug", false,
		"Trace the selection on standard error")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lisel: ")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func selectLines(cmd *cobra.Command, files []string) {
	index, target := openStreams(files)
	defer index.Close()
	defer target.Close()
	sel := lisel.Select{
		Pattern: rootCmd.pattern,
		Invert:  rootCmd.invert,
		Numbers: rootCmd.numbers,
		Debug:   debugLogger(),
	}
	if err := sel.Readers(index, target, lisel.Emit(os.Stdout)); err != nil {
		log.Fatal(err)
	}
}

func openStreams(files []string) (index, target io.ReadCloser) {
	index = openFile(files[0])
	if len(files) > 1 {
		target = openFile(files[1])
	} else {
		target = os.Stdin
	}
	if rootCmd.swap {
		index, target = target, index
	}
	return index, target
}

func openFile(name string) *os.File {
	f, err := os.Open(name)
	if err != nil {
		log.Fatal(err)
	}
	return f
}

func debugLogger() *zap.Logger {
	if !rootCmd.debug {
		return nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	zl, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}
	return zl
}
