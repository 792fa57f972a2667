package main

import (
	"bufio"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/balloons/internal/config"
	"github.com/tomz197/balloons/internal/loop/client"
	"github.com/tomz197/balloons/internal/loop/server"
	"golang.org/x/term"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "balloons"})

	cfg, err := config.LoadGameConfig(config.GetEnv("BALLOON_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load game config", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	c := client.NewClient(server.NewServer(), bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Config:   &cfg,
		Seed:     config.GetEnvUint("BALLOON_SEED", 0),
		Renderer: lipgloss.NewRenderer(os.Stdout),
	})
	runErr := c.Run()

	_ = term.Restore(fd, oldState)
	if runErr != nil {
		logger.Fatal("game error", "err", runErr)
	}
}
