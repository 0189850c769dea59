package model

import "time"

const (
	TransactionTypeDepot   = "depot"
	TransactionTypeRetrait = "retrait"

	TransactionStatutPending  = "pending"
	TransactionStatutComplete = "complete"
	TransactionStatutFailed   = "failed"
)

// Transaction is a single deposit or withdrawal against a compte and the
// sole source of its balance. Rows are immutable once created.
type Transaction struct {
	ID          string  `json:"id" gorm:"primaryKey;type:text;not null"`
	CompteID    string  `json:"compte_id" gorm:"not null;index"`
	Type        string  `json:"type" gorm:"not null;size:20;index"`
	Montant     float64 `json:"montant" gorm:"type:decimal(15,2);not null"`
	Description string  `json:"description" gorm:"size:255"`
	Statut      string  `json:"statut" gorm:"not null;size:20;default:complete;index"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
