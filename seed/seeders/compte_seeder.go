package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/teranga-bank/banka_api/model"
)

// CompteSeeder handles seeding bank accounts
type CompteSeeder struct {
	db *gorm.DB
}

// NewCompteSeeder creates a new compte seeder
func NewCompteSeeder(db *gorm.DB) *CompteSeeder {
	return &CompteSeeder{db: db}
}

// SeedComptes seeds the database with demo accounts across types, devises
// and statuts so list filters have something to bite on
func (s *CompteSeeder) SeedComptes() error {
	for _, compte := range s.getComptes() {
		var existing model.Compte
		if err := s.db.Where("numero_compte = ?", compte.NumeroCompte).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&compte).Error; err != nil {
					log.Printf("Error creating compte %s: %v", compte.NumeroCompte, err)
					return err
				}
				log.Printf("Created compte: %s", compte.NumeroCompte)
			} else {
				log.Printf("Error checking compte %s: %v", compte.NumeroCompte, err)
				return err
			}
		} else {
			log.Printf("Compte %s already exists, skipping", compte.NumeroCompte)
		}
	}

	log.Println("Compte seeding completed successfully")
	return nil
}

func (s *CompteSeeder) getComptes() []model.Compte {
	now := time.Now()
	motif := "Activité suspecte signalée par la conformité"

	return []model.Compte{
		{
			ID:           "compte_c00001",
			NumeroCompte: "C00001",
			Type:         model.CompteTypeEpargne,
			Devise:       model.DeviseFCFA,
			Statut:       model.CompteStatutActif,
			ClientID:     "client_awa_diop",
			DateCreation: now.AddDate(0, -8, 0),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "compte_c00002",
			NumeroCompte: "C00002",
			Type:         model.CompteTypeCourant,
			Devise:       model.DeviseFCFA,
			Statut:       model.CompteStatutActif,
			ClientID:     "client_awa_diop",
			DateCreation: now.AddDate(0, -6, -12),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "compte_c00003",
			NumeroCompte: "C00003",
			Type:         model.CompteTypeCheque,
			Devise:       model.DeviseEUR,
			Statut:       model.CompteStatutActif,
			ClientID:     "client_mamadou_ndiaye",
			DateCreation: now.AddDate(0, -5, -3),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "compte_c00004",
			NumeroCompte: "C00004",
			Type:         model.CompteTypeCourant,
			Devise:       model.DeviseUSD,
			Statut:       model.CompteStatutBloque,
			MotifBlocage: &motif,
			ClientID:     "client_fatou_sall",
			DateCreation: now.AddDate(0, -4, -20),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "compte_c00005",
			NumeroCompte: "C00005",
			Type:         model.CompteTypeEpargne,
			Devise:       model.DeviseFCFA,
			Statut:       model.CompteStatutActif,
			ClientID:     "client_ousmane_ba",
			DateCreation: now.AddDate(0, -2, -7),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "compte_c00006",
			NumeroCompte: "C00006",
			Type:         model.CompteTypeCourant,
			Devise:       model.DeviseFCFA,
			Statut:       model.CompteStatutActif,
			ClientID:     "client_aissatou_sow",
			DateCreation: now.AddDate(0, 0, -15),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
