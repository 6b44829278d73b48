package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hidato_go/internal/generator"
	"hidato_go/internal/parser"
	"hidato_go/internal/types"
	"hidato_go/internal/visualizer"
)

func newGenerateCommand() *cobra.Command {
	var (
		height     int
		width      int
		difficulty int
		retries    int
		blocked    float64
		seed       int64
		outFile    string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new Hidato puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := generator.NewClassicGenerator(height, width)
			if err := gen.SetDifficulty(difficulty); err != nil {
				return err
			}
			if err := gen.SetBlockedRatio(blocked); err != nil {
				return err
			}
			gen.SetMaxRetries(retries)
			if seed != 0 {
				gen.SetSeed(seed)
			}

			start := time.Now()
			p, err := gen.Generate()
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"size":       p.Dimensions(),
				"cells":      p.MaxValue,
				"difficulty": p.Difficulty,
				"elapsed":    time.Since(start),
			}).Info("generated puzzle")

			board, err := types.NewBoard(p)
			if err != nil {
				return err
			}
			visualizer.NewVisualizer(board, os.Stdout).Draw()

			if outFile == "" {
				return nil
			}
			var data []byte
			if asJSON {
				if data, err = p.ToJSON(); err != nil {
					return err
				}
			} else {
				data = []byte(parser.Format(p))
			}
			if err := os.WriteFile(outFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %v", outFile, err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&height, "height", 8, "grid height")
	cmd.Flags().IntVar(&width, "width", 8, "grid width")
	cmd.Flags().IntVar(&difficulty, "difficulty", 1, "difficulty between 1 and 5")
	cmd.Flags().IntVar(&retries, "retries", 10, "generation attempts before giving up")
	cmd.Flags().Float64Var(&blocked, "blocked", 0, "share of blocked cells between 0 and 0.3")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the puzzle to a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of the text format")
	return cmd
}
