package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fight-club/battlearena/internal/arena"
	"github.com/fight-club/battlearena/internal/config"
	"github.com/fight-club/battlearena/internal/script"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	} else {
		log.Println("loaded environment from .env")
	}

	log.Println("================================")
	log.Println(" BATTLEARENA - simulation engine")
	log.Println("================================")

	var (
		robotAPath = flag.String("a", "", "path to robot A's rule script")
		robotBPath = flag.String("b", "", "path to robot B's rule script")
		arenaSize  = flag.Int("arena-size", 0, "arena side length in tiles (default from config)")
		maxTicks   = flag.Int("max-ticks", 0, "hard tick bound before declaring a draw (default from config)")
		verbose    = flag.Bool("verbose", false, "record and print the notable-event log alongside the result")
	)
	flag.Parse()

	if *robotAPath == "" || *robotBPath == "" {
		fmt.Fprintln(os.Stderr, "usage: battlearena -a <robotA.script> -b <robotB.script> [-arena-size N] [-max-ticks N]")
		os.Exit(2)
	}

	progA := mustParseScript(*robotAPath)
	progB := mustParseScript(*robotBPath)

	cfg := config.BattleConfigFromEnv()
	if *arenaSize > 0 {
		cfg.ArenaSize = *arenaSize
	}
	if *maxTicks > 0 {
		cfg.MaxTicks = *maxTicks
	}

	var eventLog *arena.EventLog
	if *verbose {
		eventLog = arena.NewEventLog()
	}

	result, err := arena.Simulate(progA, progB, cfg, eventLog)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}

	log.Printf("battle finished: status=%s arenaSize=%d maxTicks=%d ticks=%d", result.Status, result.ArenaSize, result.MaxTicks, len(result.Ticks))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}

	if eventLog != nil {
		for _, evt := range eventLog.Events() {
			log.Printf("event: tick=%d robot=%s type=%s %s", evt.Tick, evt.RobotID, evt.Type, evt.Message)
		}
		log.Printf("event log: %d retained, %d dropped, %d total", len(eventLog.Events()), eventLog.Dropped(), eventLog.Total())
	}
}

func mustParseScript(path string) *script.Program {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	prog, diag := script.Parse(string(data))
	if diag != nil {
		log.Fatalf("parse %s: %v", path, diag)
	}
	return prog
}
