package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/geometry"
	"svw.info/sudogen/internal/solver"
)

var solveCmd = &cobra.Command{
	Use:   "solve [file]",
	Short: "Solve a board given as a JSON grid (file or stdin)",
	Long: `Reads a board as a JSON array of rows, zeros for empty cells,
and prints the completed grid. With no file argument the board is read
from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		var grid domain.Grid
		if err := json.NewDecoder(in).Decode(&grid); err != nil {
			return fmt.Errorf("parse board: %w", err)
		}
		n := grid.Size()
		if !geometry.Supported(n) {
			return fmt.Errorf("unsupported size %d (choose one of %v)", n, geometry.Sizes())
		}
		for _, row := range grid {
			if len(row) != n {
				return fmt.Errorf("board is not square: row of %d cells in a %dx%d grid", len(row), n, n)
			}
		}

		board := domain.NewBoard(grid)
		out, stats, err := solver.NewBacktrackingSolver().Solve(cmd.Context(), &board)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderGrid(out.Values))
		fmt.Fprintf(cmd.OutOrStdout(), "# %d nodes in %s\n", stats.Nodes, stats.Duration.Round(time.Microsecond))
		return nil
	},
}
