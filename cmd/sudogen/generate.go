package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"svw.info/sudogen/internal/difficulty"
	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/generator"
	"svw.info/sudogen/internal/geometry"
)

var (
	genSize     int
	genDiff     string
	genSeed     int64
	genSolution bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a puzzle and print it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !geometry.Supported(genSize) {
			return fmt.Errorf("unsupported size %d (choose one of %v)", genSize, geometry.Sizes())
		}
		seed := genSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		diff := domain.ParseDifficulty(genDiff)

		engine := generator.New()
		solution := engine.Solution(genSize, rng)
		puzzle := generator.Carve(solution, diff, rng)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# size=%d difficulty=%s seed=%d holes=%d\n",
			genSize, diff, seed, difficulty.CarveCount(diff, genSize))
		fmt.Fprint(out, renderGrid(puzzle))
		if genSolution {
			fmt.Fprintln(out, "# solution")
			fmt.Fprint(out, renderGrid(solution))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genSize, "size", 9, "grid size: 4, 6, or 9")
	generateCmd.Flags().StringVar(&genDiff, "difficulty", "easy", "easy|medium|hard")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 picks one)")
	generateCmd.Flags().BoolVar(&genSolution, "solution", false, "also print the solution")
}

// renderGrid draws a grid with box separators, empty cells as dots.
func renderGrid(g domain.Grid) string {
	n := g.Size()
	dims := geometry.Dims(n)
	var b strings.Builder
	for r := 0; r < n; r++ {
		if r > 0 && r%dims.BoxRows == 0 {
			for c := 0; c < n; c++ {
				if c > 0 && c%dims.BoxCols == 0 {
					b.WriteString("+-")
				}
				b.WriteString("--")
			}
			b.WriteByte('\n')
		}
		for c := 0; c < n; c++ {
			if c > 0 && c%dims.BoxCols == 0 {
				b.WriteString("| ")
			}
			if v := g[r][c]; v == 0 {
				b.WriteString(". ")
			} else {
				fmt.Fprintf(&b, "%d ", v)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
