package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// 1. Clients first (comptes reference them)
	clientSeeder := NewClientSeeder(s.db)
	if err := clientSeeder.SeedClients(); err != nil {
		log.Printf("Client seeding failed: %v", err)
		return err
	}

	// 2. Comptes (depend on clients)
	compteSeeder := NewCompteSeeder(s.db)
	if err := compteSeeder.SeedComptes(); err != nil {
		log.Printf("Compte seeding failed: %v", err)
		return err
	}

	// 3. Transactions (depend on comptes)
	transactionSeeder := NewTransactionSeeder(s.db)
	if err := transactionSeeder.SeedTransactions(); err != nil {
		log.Printf("Transaction seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedClientsOnly seeds only clients
func (s *MainSeeder) SeedClientsOnly() error {
	clientSeeder := NewClientSeeder(s.db)
	return clientSeeder.SeedClients()
}

// SeedComptesOnly seeds only comptes
func (s *MainSeeder) SeedComptesOnly() error {
	compteSeeder := NewCompteSeeder(s.db)
	return compteSeeder.SeedComptes()
}

// SeedTransactionsOnly seeds only transactions
func (s *MainSeeder) SeedTransactionsOnly() error {
	transactionSeeder := NewTransactionSeeder(s.db)
	return transactionSeeder.SeedTransactions()
}
