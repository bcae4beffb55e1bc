package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "topology",
	Short: "Compute the implicit topology of a steady 2D vector field",
	Long: `topology advects streamlines from a grid of seed points through a
steady 2D vector field, labels each seed by the convergence structures
its forward and backward trajectories end at, and adaptively refines a
Delaunay mesh along the label boundaries.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log run progress to stderr")
}
