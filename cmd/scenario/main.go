// Headless scenario runner. Loads a player and world prefab, runs one
// tengo scenario script against them, and exits non-zero on failure.
//
// Usage:
//
//	scenario -script wall_run.tengo [-player player.yaml] [-world world.yaml]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/daRealZoinks/Project-Skyscraper/prefabs"
	"github.com/daRealZoinks/Project-Skyscraper/scenario"
)

func main() {
	scriptName := flag.String("script", "", "scenario script to run (e.g. wall_run.tengo)")
	playerPath := flag.String("player", "player.yaml", "player prefab")
	worldPath := flag.String("world", "world.yaml", "world prefab")
	flag.Parse()

	if *scriptName == "" {
		flag.Usage()
		os.Exit(2)
	}

	player, err := prefabs.LoadPlayerSpec(*playerPath)
	if err != nil {
		log.Fatalf("load player prefab: %v", err)
	}
	world, err := prefabs.LoadWorldSpec(*worldPath)
	if err != nil {
		log.Fatalf("load world prefab: %v", err)
	}

	rt, err := scenario.New(*scriptName, player, world)
	if err != nil {
		log.Fatalf("load scenario: %v", err)
	}
	res, err := rt.Run()
	if err != nil {
		log.Fatalf("run scenario: %v", err)
	}

	if res.Failed {
		log.Printf("FAIL %s (%d ticks): %s", res.Name, res.Ticks, res.Reason)
		os.Exit(1)
	}
	log.Printf("PASS %s (%d ticks)", res.Name, res.Ticks)
}
