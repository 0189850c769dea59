package seeders

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/teranga-bank/banka_api/model"
)

// ClientSeeder handles seeding clients and their user identities
type ClientSeeder struct {
	db *gorm.DB
}

// NewClientSeeder creates a new client seeder
func NewClientSeeder(db *gorm.DB) *ClientSeeder {
	return &ClientSeeder{db: db}
}

type clientFixture struct {
	ID        string
	Titulaire string
	Email     string
	Telephone string
	Nci       string
	Adresse   string
}

// SeedClients seeds the database with Senegalese demo clients
func (s *ClientSeeder) SeedClients() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("passer123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()

	for _, fixture := range s.getClients() {
		var existing model.Client
		if err := s.db.Where("id = ?", fixture.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				user := model.User{
					ID:        fixture.ID + "_user",
					Name:      fixture.Titulaire,
					Email:     fixture.Email,
					Password:  string(hashed),
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := s.db.Create(&user).Error; err != nil {
					log.Printf("Error creating user for %s: %v", fixture.Titulaire, err)
					return err
				}

				client := model.Client{
					ID:        fixture.ID,
					UserID:    user.ID,
					Telephone: fixture.Telephone,
					Nci:       fixture.Nci,
					Adresse:   fixture.Adresse,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := s.db.Create(&client).Error; err != nil {
					log.Printf("Error creating client %s: %v", fixture.Titulaire, err)
					return err
				}
				log.Printf("Created client: %s", fixture.Titulaire)
			} else {
				log.Printf("Error checking client %s: %v", fixture.Titulaire, err)
				return err
			}
		} else {
			log.Printf("Client %s already exists, skipping", fixture.Titulaire)
		}
	}

	log.Println("Client seeding completed successfully")
	return nil
}

func (s *ClientSeeder) getClients() []clientFixture {
	return []clientFixture{
		{
			ID:        "client_awa_diop",
			Titulaire: "Awa Diop",
			Email:     "awa.diop@example.sn",
			Telephone: "771234567",
			Nci:       "1234567890123",
			Adresse:   "Sicap Liberté 6, Dakar",
		},
		{
			ID:        "client_mamadou_ndiaye",
			Titulaire: "Mamadou Ndiaye",
			Email:     "mamadou.ndiaye@example.sn",
			Telephone: "781234567",
			Nci:       "2345678901234",
			Adresse:   "Quartier Escale, Thiès",
		},
		{
			ID:        "client_fatou_sall",
			Titulaire: "Fatou Sall",
			Email:     "fatou.sall@example.sn",
			Telephone: "701234567",
			Nci:       "3456789012345",
			Adresse:   "Médina Baye, Kaolack",
		},
		{
			ID:        "client_ousmane_ba",
			Titulaire: "Ousmane Ba",
			Email:     "ousmane.ba@example.sn",
			Telephone: "761234567",
			Nci:       "4567890123456",
			Adresse:   "Ndiolofène, Saint-Louis",
		},
		{
			ID:        "client_aissatou_sow",
			Titulaire: "Aïssatou Sow",
			Email:     "aissatou.sow@example.sn",
			Telephone: "775556677",
			Nci:       "5678901234567",
			Adresse:   "Boucotte, Ziguinchor",
		},
	}
}
