package model

import "time"

const (
	CompteTypeEpargne = "epargne"
	CompteTypeCourant = "courant"
	CompteTypeCheque  = "cheque"

	CompteStatutActif  = "actif"
	CompteStatutBloque = "bloque"

	DeviseFCFA = "FCFA"
	DeviseEUR  = "EUR"
	DeviseUSD  = "USD"
)

// Compte is a bank account. The balance is not stored here: it is derived
// from the sum of the account's transactions (see CompteService).
//
// DeletedAt is a plain nullable timestamp rather than gorm.DeletedAt:
// soft-delete exclusion is an explicit predicate in the query builder so
// query construction stays auditable.
type Compte struct {
	ID           string  `json:"id" gorm:"primaryKey;type:text;not null"`
	NumeroCompte string  `json:"numero_compte" gorm:"uniqueIndex;not null;size:20"`
	Type         string  `json:"type" gorm:"not null;size:20;index:idx_comptes_client_type_statut,priority:2"`
	Devise       string  `json:"devise" gorm:"not null;size:10;default:FCFA"`
	Statut       string  `json:"statut" gorm:"not null;size:20;default:actif;index:idx_comptes_client_type_statut,priority:3"`
	MotifBlocage *string `json:"motif_blocage,omitempty"`
	ClientID     string  `json:"client_id" gorm:"not null;index:idx_comptes_client_type_statut,priority:1"`
	Client       *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	DateCreation time.Time  `json:"date_creation" gorm:"not null"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:CompteID;constraint:OnDelete:CASCADE"`
}
