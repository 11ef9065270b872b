package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from an interactive menu",
	Long: `Start t2048 in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Saved games appear at the top of the menu and can be resumed.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select
  Tab          - High scores
  Q            - Quit

Examples:
  t2048 menu
  t2048 menu --fps 30
  t2048 menu --db ./t2048.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := loadApp("t2048")
	if err != nil {
		return err
	}

	store := a.openStore()
	defer closeStore(store)

	owner := localOwner()
	cfg := a.runtimeConfig()

	for {
		choice, updated, err := tui.RunMenu(store, owner, cfg)
		if err != nil {
			return err
		}
		cfg = updated
		if choice == nil {
			return nil
		}

		if choice.Kind == tui.ChoiceScores {
			goBack, err := tui.RunScoreboard(store, choice.GameID, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		g, err := choice.NewGame()
		if err != nil {
			a.logger.Error("cannot create game", "mode", choice.GameID, "error", err)
			continue
		}

		runCfg := cfg
		if runCfg.Seed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}
		opts := tui.GameOptions{
			Store:  store,
			Logger: a.logger,
			Owner:  owner,
			Resume: choice.Resume,
		}
		if err := tui.Run(g, runCfg, opts); err != nil {
			return err
		}
	}
}
