package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teranga-bank/banka_api/model"
)

// newTestSqlService opens a private in-memory database per test. A single
// connection keeps shared-cache sqlite deterministic under the concurrency
// tests.
func newTestSqlService(t *testing.T) *SqlService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	svc := &SqlService{db: db, driver: "sqlite"}
	require.NoError(t, svc.migrate())
	return svc
}

func newTestCompteService(t *testing.T) (*CompteService, *SqlService) {
	t.Helper()
	sqlSvc := newTestSqlService(t)
	return &CompteService{sqlSvc: sqlSvc}, sqlSvc
}

type seededCompte struct {
	Compte model.Compte
	Client model.Client
	User   model.User
}

// seedCompte creates a user, client and compte with the given fields plus
// completed deposit transactions summing to solde.
func seedCompte(t *testing.T, s *SqlService, numero, titulaire, compteType, statut string, solde float64, dateCreation time.Time) seededCompte {
	t.Helper()

	user := model.User{
		ID:       uuid.NewString(),
		Name:     titulaire,
		Email:    uuid.NewString() + "@example.sn",
		Password: "x",
	}
	require.NoError(t, s.db.Create(&user).Error)

	client := model.Client{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Telephone: "77" + uuid.NewString()[:7],
		Nci:       uuid.NewString()[:13],
		Adresse:   "Dakar",
	}
	require.NoError(t, s.db.Create(&client).Error)

	compte := model.Compte{
		ID:           uuid.NewString(),
		NumeroCompte: numero,
		Type:         compteType,
		Devise:       model.DeviseFCFA,
		Statut:       statut,
		ClientID:     client.ID,
		DateCreation: dateCreation,
	}
	require.NoError(t, s.db.Create(&compte).Error)

	if solde != 0 {
		seedTransaction(t, s, compte.ID, model.TransactionTypeDepot, solde, model.TransactionStatutComplete)
	}

	return seededCompte{Compte: compte, Client: client, User: user}
}

func seedTransaction(t *testing.T, s *SqlService, compteID, txType string, montant float64, statut string) {
	t.Helper()
	require.NoError(t, s.db.Create(&model.Transaction{
		ID:       uuid.NewString(),
		CompteID: compteID,
		Type:     txType,
		Montant:  montant,
		Statut:   statut,
		Date:     time.Now(),
	}).Error)
}
