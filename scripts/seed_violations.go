//go:build ignore

// Seeds sample violations into the autofix database for local testing.
// The violations table is normally populated by the detection pipeline;
// this script stands in for it during development.
//
// Usage:
//
//	go run scripts/seed_violations.go -db ~/.autofix/autofix.db -project proj-1
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type seed struct {
	id       string
	category string
	typ      string
	nodeID   string
	nodeName string
	snapshot map[string]any
}

var seeds = []seed{
	{"v-layout-1", "AUTO_LAYOUT", "ADD_AUTO_LAYOUT", "node-101", "Card",
		map[string]any{"type": "FRAME", "layoutMode": "NONE"}},
	{"v-layout-2", "AUTO_LAYOUT", "SET_GAP", "node-102", "Toolbar",
		map[string]any{"type": "FRAME", "layoutMode": "HORIZONTAL", "itemSpacing": float64(3)}},
	{"v-size-1", "SIZE_CONSTRAINT", "HUG_CONTENTS", "node-103", "Button",
		map[string]any{"type": "FRAME", "layoutMode": "HORIZONTAL", "primaryAxisSizingMode": "FIXED"}},
	{"v-name-1", "NAMING", "RENAME_SEMANTIC", "node-104", "Frame 427",
		map[string]any{"type": "FRAME", "name": "Frame 427"}},
	{"v-style-1", "STYLE", "APPLY_TEXT_STYLE", "node-105", "Headline",
		map[string]any{"type": "TEXT", "textStyleId": ""}},
}

func main() {
	dbPath := flag.String("db", "", "path to the autofix sqlite database")
	project := flag.String("project", "proj-1", "project id to seed violations into")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "-db is required")
		os.Exit(1)
	}

	database, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, s := range seeds {
		snapshot, err := json.Marshal(s.snapshot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to marshal snapshot for %s: %v\n", s.id, err)
			os.Exit(1)
		}
		_, err = database.Exec(`
			INSERT OR REPLACE INTO violations
				(id, project_id, category, type, node_id, node_name, snapshot, fixed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)`,
			s.id, *project, s.category, s.typ, s.nodeID, s.nodeName, string(snapshot), now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to insert %s: %v\n", s.id, err)
			os.Exit(1)
		}
		fmt.Printf("seeded %s (%s/%s)\n", s.id, s.category, s.typ)
	}
	fmt.Printf("done: %d violations in project %s\n", len(seeds), *project)
}
