package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/content"
	"github.com/iburimskiy/cosmic-portfolio/internal/game"
	"github.com/iburimskiy/cosmic-portfolio/internal/logging"
	"github.com/iburimskiy/cosmic-portfolio/internal/music"
	"github.com/iburimskiy/cosmic-portfolio/internal/theme"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	log := logging.NewLogger()
	if err := run(log, *configPath); err != nil {
		log.Failure("portfolio stopped", err)
		os.Exit(1)
	}
}

func run(log *logging.Logger, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	page, err := content.Default()
	if err != nil {
		return err
	}

	sig := theme.NewSignal(cfg.Theme.Dark)
	player := music.New(log, music.OptionsFrom(cfg.Music), nil, nil, nil)
	player.Attach(sig)
	player.Start()

	g := game.New(log, cfg, sig, player, page, nil)
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("starting", "config", configPath, "dark", sig.Dark())
	if err := ebiten.RunGame(g); err != nil && !game.IsTermination(err) {
		return logging.WrapError(err, "game loop")
	}
	return nil
}
