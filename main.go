package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lotpulse-tui/internal/api"
	"lotpulse-tui/internal/config"
	"lotpulse-tui/internal/ui"
	"lotpulse-tui/pkg/logger"
)

func main() {
	cfg := config.Load()

	apiURL := flag.String("api-url", cfg.APIURL, "Inventory intelligence API URL")
	dealership := flag.Int("dealership", cfg.DealershipID, "Dealership id sent on every request")
	maxWidth := flag.Int("max-width", cfg.MaxWidth, "Max columns (0 = no limit)")
	maxHeight := flag.Int("max-height", cfg.MaxHeight, "Max rows (0 = no limit)")
	flag.Parse()

	log := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	logger.SetGlobalLogger(log)
	log.Info().Str("api_url", *apiURL).Int("dealership_id", *dealership).Msg("starting lotpulse")

	client := api.NewClient(*apiURL, *dealership)
	m := ui.NewModel(client, log, cfg.RefreshInterval, *maxWidth, *maxHeight)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
