package seeders

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/teranga-bank/banka_api/model"
)

// TransactionSeeder handles seeding account transactions
type TransactionSeeder struct {
	db *gorm.DB
}

// NewTransactionSeeder creates a new transaction seeder
func NewTransactionSeeder(db *gorm.DB) *TransactionSeeder {
	return &TransactionSeeder{db: db}
}

// SeedTransactions seeds each demo account with an opening deposit and a few
// movements. Balances are derived from these rows, so the mix includes
// withdrawals and one pending deposit that must not count
func (s *TransactionSeeder) SeedTransactions() error {
	for _, transaction := range s.getTransactions() {
		var existing model.Transaction
		if err := s.db.Where("id = ?", transaction.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&transaction).Error; err != nil {
					log.Printf("Error creating transaction %s: %v", transaction.ID, err)
					return err
				}
			} else {
				log.Printf("Error checking transaction %s: %v", transaction.ID, err)
				return err
			}
		}
	}

	log.Println("Transaction seeding completed successfully")
	return nil
}

func (s *TransactionSeeder) getTransactions() []model.Transaction {
	now := time.Now()
	seq := 0

	tx := func(compteID, txType string, montant float64, description, statut string, daysAgo int) model.Transaction {
		seq++
		date := now.AddDate(0, 0, -daysAgo)
		return model.Transaction{
			ID:          fmt.Sprintf("tx_seed_%04d", seq),
			CompteID:    compteID,
			Type:        txType,
			Montant:     montant,
			Description: description,
			Statut:      statut,
			Date:        date,
			CreatedAt:   date,
			UpdatedAt:   date,
		}
	}

	return []model.Transaction{
		tx("compte_c00001", model.TransactionTypeDepot, 150000, "Ouverture de compte - Dépôt initial", model.TransactionStatutComplete, 240),
		tx("compte_c00001", model.TransactionTypeDepot, 75000, "Virement salaire", model.TransactionStatutComplete, 30),
		tx("compte_c00001", model.TransactionTypeRetrait, 25000, "Retrait GAB Dakar", model.TransactionStatutComplete, 12),

		tx("compte_c00002", model.TransactionTypeDepot, 500000, "Ouverture de compte - Dépôt initial", model.TransactionStatutComplete, 192),
		tx("compte_c00002", model.TransactionTypeRetrait, 120000, "Paiement loyer", model.TransactionStatutComplete, 25),
		tx("compte_c00002", model.TransactionTypeDepot, 200000, "Virement en attente", model.TransactionStatutPending, 2),

		tx("compte_c00003", model.TransactionTypeDepot, 1000, "Ouverture de compte - Dépôt initial", model.TransactionStatutComplete, 153),
		tx("compte_c00003", model.TransactionTypeDepot, 450, "Transfert international", model.TransactionStatutComplete, 40),

		tx("compte_c00004", model.TransactionTypeDepot, 2000, "Ouverture de compte - Dépôt initial", model.TransactionStatutComplete, 140),
		tx("compte_c00004", model.TransactionTypeRetrait, 300, "Retrait guichet", model.TransactionStatutFailed, 50),

		tx("compte_c00005", model.TransactionTypeDepot, 80000, "Ouverture de compte - Dépôt initial", model.TransactionStatutComplete, 67),
		tx("compte_c00005", model.TransactionTypeDepot, 35000, "Dépôt espèces", model.TransactionStatutComplete, 10),

		tx("compte_c00006", model.TransactionTypeDepot, 250000, "Ouverture de compte - Dépôt initial", model.TransactionStatutComplete, 15),
		tx("compte_c00006", model.TransactionTypeRetrait, 60000, "Paiement fournisseur", model.TransactionStatutComplete, 5),
	}
}
