package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/opsmind/mcp-platform/internal/config"
)

const usage = `Usage: migrate <command> [args]

Commands:
  up              apply all pending migrations
  down            roll back the most recent migration
  version         print the current schema version
  generate <name> create a new pair of migration files
`

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "path to config file")
	dir := flag.String("dir", "./migrations", "path to migrations directory")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmd := flag.Arg(0)
	if cmd == "generate" {
		if flag.NArg() < 2 {
			log.Fatal("generate requires a migration name")
		}
		if err := generate(*dir, flag.Arg(1)); err != nil {
			log.Fatalf("Failed to generate migration: %v", err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, err := migrate.New("file://"+*dir, databaseURL(cfg))
	if err != nil {
		log.Fatalf("Failed to init migrator: %v", err)
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			log.Fatalf("Failed to read version: %v", verr)
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err == migrate.ErrNoChange {
		log.Println("No migrations to apply (database up-to-date)")
		return
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")
}

// databaseURL 构造 golang-migrate 的数据库连接串
func databaseURL(cfg *config.Config) string {
	if cfg.Database.Driver == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			url.QueryEscape(cfg.Database.User), url.QueryEscape(cfg.Database.Password),
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
	}
	return "sqlite://" + cfg.Database.Path
}

// generate 生成一对空的迁移文件
func generate(dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	version := time.Now().UTC().Format("20060102150405")
	for _, suffix := range []string{"up", "down"} {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s.sql", version, name, suffix))
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return err
		}
		log.Printf("Created %s", path)
	}
	return nil
}
