package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var (
	flagResume     bool
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing 2048. The mode is classic unless one is given.

Modes:
  classic  (2048)           - Reach 2048, then keep going if you like
  campaign (2048_campaign)  - Clear levels by reaching their target tile
  endless  (2048_endless)   - No win, play until the board locks up

Controls:
  Arrows/WASD/hjkl - Slide tiles
  P/Space          - Pause
  C                - Continue after reaching 2048
  R                - Restart
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit (the game is saved)

Difficulty options (chance a new tile is a 4):
  easy   - 5%
  normal - 10%
  hard   - 25%

Examples:
  t2048 play
  t2048 play endless --difficulty hard
  t2048 play campaign --level 4
  t2048 play --resume
  t2048 play classic --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved game for this mode")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign start level (1-based)")
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := loadApp("t2048")
	if err != nil {
		return err
	}
	if err := a.applyDifficulty(flagDifficulty); err != nil {
		return err
	}

	gameID := game.IDClassic
	if len(args) == 1 {
		if gameID, err = game.ResolveID(args[0]); err != nil {
			return fmt.Errorf("%w (run 't2048 list' to see available modes)", err)
		}
	}
	if flagLevel != 0 && gameID != game.IDCampaign {
		return fmt.Errorf("--level only applies to the campaign")
	}
	if flagLevel < 0 || flagLevel > game.LevelCount() {
		return fmt.Errorf("--level must be between 1 and %d", game.LevelCount())
	}

	var g registry.Game
	if flagLevel > 0 {
		g = game.NewCampaign(game.StartAt(flagLevel))
	} else if g, err = registry.Create(gameID); err != nil {
		return err
	}

	store := a.openStore()
	defer closeStore(store)

	opts := tui.GameOptions{
		Store:  store,
		Logger: a.logger,
		Owner:  localOwner(),
	}

	if flagResume {
		if store == nil {
			return fmt.Errorf("cannot resume without a scores database")
		}
		saved, err := store.LoadGame(opts.Owner, gameID)
		if err != nil {
			return err
		}
		if saved == nil {
			a.logger.Info("no saved game, starting a new one", "mode", gameID)
		} else {
			opts.Resume = &game.Progress{
				Grid:    saved.Grid,
				Score:   saved.Score,
				Level:   saved.Level,
				WinSeen: saved.WinSeen,
			}
		}
	}

	return tui.Run(g, a.runtimeConfig(), opts)
}
