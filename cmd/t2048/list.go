package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and campaign levels",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	// loads the level table from config
	if _, err := loadApp("t2048"); err != nil {
		return err
	}

	var modes [][]string
	for _, info := range registry.List() {
		modes = append(modes, []string{info.ID, info.Title})
	}
	printTable([]string{"ID", "Mode"}, modes)

	var levels [][]string
	for i, lvl := range game.Levels() {
		levels = append(levels, []string{
			strconv.Itoa(i + 1),
			lvl.Name,
			strconv.Itoa(lvl.Target),
			fmt.Sprintf("%.0f%%", lvl.Spawn4*100),
		})
	}
	printTable([]string{"Level", "Name", "Target", "4s"}, levels)

	fmt.Println("Run 't2048 play <mode>' to start, e.g. 't2048 play campaign --level 2'.")
	return nil
}
