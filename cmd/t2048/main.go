// Command t2048 is 2048 for the terminal. It plays locally, serves a menu
// per SSH connection, or exposes games through a JSON HTTP API.
//
// Run "t2048 help" for the subcommands. Settings come from
// ~/.t2048/config.yaml, T2048_* environment variables (a .env file is read
// too) and the persistent flags, later sources winning.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// persistent flags, shared by every subcommand
var (
	flagConfig string
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `Slide the board with the arrow keys, WASD or hjkl. Two equal tiles
that collide merge into their sum, which is added to the score. Reaching
2048 wins; the game ends when no slide changes the board.

Examples:
  t2048 play
  t2048 play 2048_campaign --level 3
  t2048 play --resume
  t2048 serve
  t2048 api`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed for tile spawns, for reproducible games (0 = time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (empty = from config)")

	rootCmd.AddCommand(playCmd, menuCmd, listCmd, scoresCmd, serveCmd, apiCmd)
}
