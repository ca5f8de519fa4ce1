package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alearecuest/SuperSID-Pro/internal/config"
	"github.com/alearecuest/SuperSID-Pro/internal/sim"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	stations, err := sim.OpenStationStore(cfg.Stations.Path)
	if err != nil {
		log.Fatalf("Failed to open station store: %v", err)
	}
	defer stations.Close()

	metrics := sim.NewMetrics()
	hub := sim.NewHub()
	history := sim.NewHistory(cfg.History.Capacity, sim.BandNames(sim.DefaultBands))
	gen := sim.NewGenerator(hub, history, metrics, sim.DefaultBands, cfg.Generator.Interval, cfg.Generator.AnomalyChance)
	weather := sim.NewSpaceWeather()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go gen.Run(ctx)
	go weather.Run(ctx, cfg.SpaceWeather.UpdateInterval)

	if cfg.Generator.AutoStart {
		if err := gen.Start(); err != nil {
			log.Fatalf("Failed to start generator: %v", err)
		}
		log.Println("Monitoring started automatically")
	}

	server := sim.NewServer(cfg.Server.Debug, hub, gen, history, weather, stations, metrics)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	if err := server.Run(ctx, cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
