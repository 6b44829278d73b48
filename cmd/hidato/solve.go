package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hidato_go/internal/parser"
	"hidato_go/internal/solver"
	"hidato_go/internal/types"
	"hidato_go/internal/visualizer"
)

// loadBoard reads a puzzle file and builds a board from it. Errors carry
// the file name so that callers can report them as-is.
func loadBoard(path string) (*types.Board, *types.Puzzle, error) {
	p, err := parser.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	board, err := types.NewBoard(p)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %v", path, err)
	}
	return board, p, nil
}

func newSolveCommand() *cobra.Command {
	var (
		delay   time.Duration
		noAnim  bool
		noColor bool
		doProf  bool
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "solve [puzzle-file]",
		Short: "Solve a Hidato puzzle with animated progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if doProf {
				defer profile.Start().Stop()
			}

			board, _, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			switch {
			case !noAnim:
				viz := visualizer.NewVisualizer(board, os.Stdout)
				viz.Delay = delay
				viz.Color = !noColor
				board.SetObserver(viz)
				viz.Draw()
			case verbose:
				board.SetObserver(visualizer.NewTracer(log))
			}

			result, err := solver.New(board).Solve()
			if err != nil {
				return err
			}

			if noAnim {
				final := visualizer.NewVisualizer(board, os.Stdout)
				final.Color = !noColor
				final.Draw()
			}

			if result.Solved {
				fmt.Println("The Hidato puzzle has been solved!")
				fmt.Printf("It took %d steps to solve!\n", result.Steps)
			} else {
				fmt.Println("The Hidato puzzle has not been solved!")
				fmt.Printf("%d steps have been taken\n", result.Steps)
			}
			log.WithFields(logrus.Fields{
				"steps":    result.Steps,
				"duration": result.Duration,
			}).Debug("solver finished")

			if outFile != "" && result.Solved {
				out := types.NewPuzzle(board.Height(), board.Width())
				out.Givens = board.Values()
				if err := os.WriteFile(outFile, []byte(parser.Format(out)), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %v", outFile, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", visualizer.DefaultDelay, "pause after each animated placement")
	cmd.Flags().BoolVar(&noAnim, "no-anim", false, "skip the animation and print only the final grid")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&doProf, "profile", false, "write a CPU profile")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the solved grid to a file")
	return cmd
}

func newBatchCommand() *cobra.Command {
	var (
		jobs   int
		doProf bool
	)
	cmd := &cobra.Command{
		Use:   "batch [puzzle-file|puzzle-dir...]",
		Short: "Solve many puzzles concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if doProf {
				defer profile.Start().Stop()
			}

			// Directories stand for the .txt puzzles inside them.
			paths := make([]string, 0, len(args))
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return err
				}
				if info.IsDir() {
					matches, err := filepath.Glob(filepath.Join(arg, "*.txt"))
					if err != nil {
						return err
					}
					paths = append(paths, matches...)
					continue
				}
				paths = append(paths, arg)
			}
			if len(paths) == 0 {
				return errors.New("no puzzle files to solve")
			}

			type outcome struct {
				result solver.Result
				err    error
			}
			outcomes := make([]outcome, len(paths))

			start := time.Now()
			g := new(errgroup.Group)
			g.SetLimit(jobs)
			for i, path := range paths {
				g.Go(func() error {
					board, _, err := loadBoard(path)
					if err != nil {
						outcomes[i] = outcome{err: err}
						return nil
					}
					res, err := solver.New(board).Solve()
					if err != nil {
						err = fmt.Errorf("%s: %v", path, err)
					}
					outcomes[i] = outcome{result: res, err: err}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			solved := 0
			for i, path := range paths {
				o := outcomes[i]
				switch {
				case o.err != nil:
					fmt.Println(o.err)
				case o.result.Solved:
					solved++
					fmt.Printf("%s: solved in %d steps (%v)\n", path, o.result.Steps, o.result.Duration)
				default:
					fmt.Printf("%s: not solved after %d steps\n", path, o.result.Steps)
				}
			}
			fmt.Printf("Solved %d of %d puzzles in %v\n", solved, len(paths), time.Since(start))
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of concurrent solves")
	cmd.Flags().BoolVar(&doProf, "profile", false, "write a CPU profile")
	return cmd
}
