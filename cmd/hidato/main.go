package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var verbose bool

func main() {
	root := &cobra.Command{
		Use:           "hidato",
		Short:         "Generate, solve and store Hidato puzzles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(
		newSolveCommand(),
		newBatchCommand(),
		newGenerateCommand(),
		newUploadCommand(),
		newGetCommand(),
		newListCommand(),
	)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
