package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"emberhold/internal/database"
	"emberhold/internal/game"
	"emberhold/pkg/defs"
)

func main() {
	dbPath := flag.String("db", "data/emberhold.db", "Database path")
	configPath := flag.String("config", "", "Optional YAML config file")
	seed := flag.Int64("seed", 1, "Income roll seed for new sessions")
	turns := flag.Int("turns", 10, "Number of turns to simulate")
	loadName := flag.String("load", "", "Save slot to resume")
	saveName := flag.String("save", "", "Save slot to write when done")
	build := flag.String("build", "", "Buildings to place before simulating, e.g. farm:1:1,house:4:2")
	research := flag.String("research", "", "Research to start before simulating")
	listSaves := flag.Bool("list", false, "List save slots and exit")
	flag.Parse()

	// Use DB_PATH env var if set, for deployments with persistent disks
	actualDBPath := *dbPath
	if envDBPath := os.Getenv("DB_PATH"); envDBPath != "" {
		actualDBPath = envDBPath
		log.Printf("Using DB_PATH from environment: %s", actualDBPath)
	}

	db, err := database.New(actualDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if *listSaves {
		infos, err := db.ListSaves()
		if err != nil {
			log.Fatalf("Failed to list saves: %v", err)
		}
		for _, info := range infos {
			log.Printf("%s  turn %d  updated %s", info.Name, info.Turn, info.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return
	}

	cfg := game.DefaultConfig()
	if *configPath != "" {
		cfg, err = game.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	definitions, err := defs.Load()
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	var session *game.Session
	if *loadName != "" {
		save, err := db.GetSaveByName(*loadName)
		if err != nil {
			log.Fatalf("Failed to load save %q: %v", *loadName, err)
		}
		session = game.RestoreSession(cfg, definitions, save.Snapshot)
		log.Printf("Resumed %q at turn %d", *loadName, session.Turns.TurnData().Turn)
	} else {
		session = game.NewSession(cfg, definitions, game.SessionOptions{
			Initial:   game.Ledger{Gold: 100, Materials: 50, Food: 75, Population: 10},
			MapWidth:  32,
			MapHeight: 32,
			Seed:      *seed,
			RulerName: "Aldric",
			RulerAge:  24,
		})
	}

	placeBuildings(session, *build)

	if *research != "" {
		turn := session.Turns.TurnData().Turn
		if session.Research.Start(*research, turn) {
			log.Printf("Research started: %s", *research)
		} else {
			log.Printf("Cannot start research %s: %v", *research, session.Research.CanStart(*research))
		}
	}

	for i := 0; i < *turns; i++ {
		result := session.Turns.EndTurn()
		data := session.Turns.TurnData()
		log.Printf("Turn %d: income=%s upkeepPaid=%v focus=%d/%d",
			data.Turn, formatIncome(result.Income), result.UpkeepPaid,
			data.Focus.Current, data.Focus.Max)
		if result.CompletedResearch != nil {
			log.Printf("Research completed: %s", result.CompletedResearch.Name)
		}
		if !result.UpkeepPaid {
			log.Printf("Upkeep could not be paid; the settlement is starving")
			break
		}
	}

	ledger := session.Resources.All()
	log.Printf("Final resources: gold=%d materials=%d food=%d population=%d",
		ledger.Gold, ledger.Materials, ledger.Food, ledger.Population)

	if *saveName != "" {
		if _, err := db.PutSave(*saveName, session.Snapshot()); err != nil {
			log.Fatalf("Failed to save %q: %v", *saveName, err)
		}
		log.Printf("Saved as %q", *saveName)
	}
}

// placeBuildings applies a comma-separated list of id:x:y placements.
func placeBuildings(session *game.Session, spec string) {
	if spec == "" {
		return
	}
	for _, item := range strings.Split(spec, ",") {
		parts := strings.Split(strings.TrimSpace(item), ":")
		if len(parts) != 3 {
			log.Printf("Skipping malformed build entry %q", item)
			continue
		}
		x, errX := strconv.Atoi(parts[1])
		y, errY := strconv.Atoi(parts[2])
		if errX != nil || errY != nil {
			log.Printf("Skipping malformed build entry %q", item)
			continue
		}
		inst, err := session.Buildings.Place(parts[0], x, y)
		if err != nil {
			log.Printf("Cannot place %s at %d,%d: %v", parts[0], x, y, err)
			continue
		}
		log.Printf("Placed %s at %d,%d (%s)", parts[0], x, y, inst.InstanceID)
	}
}

func formatIncome(income game.Cost) string {
	if len(income) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(income))
	for _, r := range game.ResourceTypes() {
		if amount, ok := income[r]; ok {
			parts = append(parts, strings.ToLower(r.String())+"+"+strconv.Itoa(amount))
		}
	}
	return strings.Join(parts, " ")
}
