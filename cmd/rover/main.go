// Package main is the entry point of the rover firmware process.
// It loads the configuration, wires the board, the serial host link and the
// control loop together, and runs until interrupted.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SonicRover/internal/core"
	"SonicRover/internal/util"
)

func main() {
	util.SetupLogger()

	cfgPath := flag.String("c", "configs/config.yml", "path to configuration file")
	serialDev := flag.String("serial", "", "override serial device for the host link")
	board := flag.String("board", "", "override board backend")
	uplinkAddr := flag.String("uplink", "", "enable LoRaWAN uplink to this UDP address")
	flag.Parse()

	cfg, err := core.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *serialDev != "" {
		cfg.Rover.SerialDev = *serialDev
	}
	if *board != "" {
		cfg.Rover.Board = *board
	}
	if *uplinkAddr != "" {
		cfg.Uplink.Enabled = true
		cfg.Uplink.UDPAddr = *uplinkAddr
	}

	log.Printf("[Main] rover %s: board=%s serial=%s", cfg.Rover.ID, cfg.Rover.Board, cfg.Rover.SerialDev)

	sys, err := core.NewSystemFromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to create system: %v", err)
	}

	if err := sys.StartAll(); err != nil {
		log.Fatalf("failed to start system: %v", err)
	}

	// wait for Ctrl+C or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[Main] Shutting down rover...")
	sys.StopAll()
	log.Println("[Main] Rover stopped cleanly.")
}
