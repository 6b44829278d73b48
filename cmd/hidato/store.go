package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/duke-git/lancet/v2/random"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hidato_go/db"
	"hidato_go/internal/parser"
	"hidato_go/internal/solver"
	"hidato_go/internal/types"
	"hidato_go/internal/visualizer"
)

func initStore() error {
	if err := db.Init(); err != nil {
		return err
	}
	return db.Authenticate()
}

func newUploadCommand() *cobra.Command {
	var (
		id         string
		difficulty int
	)
	cmd := &cobra.Command{
		Use:   "upload [puzzle-file]",
		Short: "Solve a puzzle and store it in PocketBase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if difficulty < 1 || difficulty > 5 {
				return errors.New("difficulty must be between 1 and 5")
			}

			board, p, err := loadBoard(args[0])
			if err != nil {
				return err
			}
			result, err := solver.New(board).Solve()
			if err != nil {
				return err
			}
			if !result.Solved {
				return fmt.Errorf("refusing to upload: no solution found after %d steps", result.Steps)
			}
			p.Solution = board.Values()
			p.Difficulty = difficulty

			if err := initStore(); err != nil {
				return err
			}
			if id == "" {
				id = random.RandNumeralOrLetter(6)
			}
			record, err := db.UploadPuzzle(id, p)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"id":   record.ID,
				"size": p.Dimensions(),
			}).Info("uploaded puzzle")
			fmt.Printf("Uploaded puzzle %s\n", record.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record ID, max 6 characters, random when empty")
	cmd.Flags().IntVar(&difficulty, "difficulty", 1, "difficulty tag between 1 and 5")
	return cmd
}

func newGetCommand() *cobra.Command {
	var (
		outFile      string
		showSolution bool
	)
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Fetch a stored puzzle and display it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStore(); err != nil {
				return err
			}
			rec, err := db.GetPuzzle(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Puzzle %s (%s, difficulty %s, created %s)\n",
				rec.ID, rec.Size, rec.Difficulty, rec.Created)

			show := rec.Puzzle
			if showSolution {
				if rec.Puzzle.Solution == nil {
					return fmt.Errorf("record %s has no solution stored", rec.ID)
				}
				show.Givens = rec.Puzzle.Solution
			}
			board, err := types.NewBoard(&show)
			if err != nil {
				return err
			}
			visualizer.NewVisualizer(board, os.Stdout).Draw()

			if outFile != "" {
				if err := os.WriteFile(outFile, []byte(parser.Format(&rec.Puzzle)), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %v", outFile, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the puzzle text to a file")
	cmd.Flags().BoolVar(&showSolution, "solution", false, "show the stored solution instead of the clues")
	return cmd
}

func newListCommand() *cobra.Command {
	var (
		page       int
		perPage    int
		difficulty string
		size       string
		sortField  string
		sortOrder  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored puzzles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStore(); err != nil {
				return err
			}

			filters := make(map[string]string)
			if difficulty != "" {
				filters["difficulty"] = difficulty
			}
			if size != "" {
				filters["size"] = size
			}

			result, err := db.ListPuzzles(page, perPage, filters, sortField, sortOrder)
			if err != nil {
				return err
			}

			fmt.Printf("%-8s %-8s %-10s %s\n", "ID", "SIZE", "DIFFICULTY", "CREATED")
			for _, item := range result.Items {
				fmt.Printf("%-8v %-8v %-10v %v\n",
					item["id"], item["size"], item["difficulty"], item["created"])
			}
			fmt.Printf("Page %d of %d (%d puzzles)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "records per page")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "filter by difficulty, 1 to 5")
	cmd.Flags().StringVar(&size, "size", "", "filter by size, e.g. 8x8")
	cmd.Flags().StringVar(&sortField, "sort", "created", "sort field")
	cmd.Flags().StringVar(&sortOrder, "order", "desc", "asc or desc")
	return cmd
}
