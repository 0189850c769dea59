package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teranga-bank/banka_api/model"
	"github.com/teranga-bank/banka_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, clients, comptes, transactions")
		dbPath   = flag.String("db", "", "SQLite database path (overrides DB_DRIVER/DATABASE_URL)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Client{}, &model.Compte{}, &model.Transaction{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "clients":
		log.Println("Seeding clients only...")
		if err := mainSeeder.SeedClientsOnly(); err != nil {
			log.Fatalf("Failed to seed clients: %v", err)
		}
	case "comptes":
		log.Println("Seeding comptes only...")
		if err := mainSeeder.SeedComptesOnly(); err != nil {
			log.Fatalf("Failed to seed comptes: %v", err)
		}
	case "transactions":
		log.Println("Seeding transactions only...")
		if err := mainSeeder.SeedTransactionsOnly(); err != nil {
			log.Fatalf("Failed to seed transactions: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'clients', 'comptes', or 'transactions'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func openDatabase(dbPath string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Info)}

	if dbPath != "" {
		log.Printf("Connecting to SQLite database: %s", dbPath)
		return gorm.Open(sqlite.Open(dbPath), cfg)
	}

	if os.Getenv("DB_DRIVER") == "sqlite" {
		name := os.Getenv("DB_NAME")
		if name == "" {
			name = "banka.db"
		}
		log.Printf("Connecting to SQLite database: %s", name)
		return gorm.Open(sqlite.Open(name), cfg)
	}

	dsn := os.Getenv("DATABASE_URL")
	log.Println("Connecting to PostgreSQL database")
	return gorm.Open(postgres.Open(dsn), cfg)
}

func showHelp() {
	log.Println(`
Database Seeding Tool for the Banka API

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, clients, comptes, transactions
  -db string
        SQLite database path (overrides DB_DRIVER/DATABASE_URL)
  -help
        Show this help message

Examples:
  # Seed everything
  go run seed/main.go

  # Seed only clients
  go run seed/main.go -type=clients

  # Seed into a local SQLite file
  go run seed/main.go -db=./banka.db

Environment Variables:
  DB_DRIVER    - "postgres" (default) or "sqlite"
  DATABASE_URL - PostgreSQL DSN
  DB_NAME      - SQLite database path (default: banka.db)
`)
}
