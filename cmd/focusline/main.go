package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/focusline/internal/config"
	"github.com/jask/focusline/internal/database"
	"github.com/jask/focusline/internal/database/repository"
	"github.com/jask/focusline/internal/gateway"
	"github.com/jask/focusline/internal/service"
	"github.com/jask/focusline/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	overrides, err := config.LoadShortcuts(cfg.UI.ShortcutsPath)
	if err != nil {
		log.Fatalf("shortcuts: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if cfg.Database.SeedDemo {
		if err := database.SeedDemoTasks(ctx, db); err != nil {
			log.Fatalf("seed demo tasks: %v", err)
		}
	}

	tasks := repository.NewTaskRepo(db)
	sessions := service.NewSessions(gateway.NewSQLite(repository.NewSessionRepo(db)), cfg.Session.UserID, cfg.PersistTimeout())

	p := tea.NewProgram(tui.New(ctx, cfg, tasks, sessions, overrides), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
