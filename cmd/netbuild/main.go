// Command netbuild derives a transit network graph from a static GTFS
// dataset: deduplicated stop-to-stop lines plus a schedule table of every
// timed traversal, written to a SQLite database.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "netbuild",
	Short: "Derive a transit network graph from static GTFS data",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
