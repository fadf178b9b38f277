package main

import (
	"os"

	"github.com/simclust/simclust/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simclust",
	Short: "Agglomerative hierarchical clustering over similarity tables",
	Long: `simclust groups named data points by agglomerative hierarchical
clustering. It reads a tab-delimited table of pairwise similarity
scores, starts every point in its own cluster, and repeatedly merges
the two most-similar clusters under a chosen linkage method until no
remaining pair scores at least the cutoff.

Linkage methods:
  • complete - merged pairs score by their least similar elements
  • single   - merged pairs score by their most similar elements
  • average  - merged pairs score by the mean over all cross pairs`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewClusterCmd())
	rootCmd.AddCommand(NewConvertCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
