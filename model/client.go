package model

import "time"

// Client is the holder-of-record for one or more comptes, linked to a User
// identity. Telephone and NCI (national identity number) are unique across
// clients; the database constraints are the authority for duplicate
// detection under concurrent creation.
type Client struct {
	ID        string `json:"id" gorm:"primaryKey;type:text;not null"`
	UserID    string `json:"user_id" gorm:"not null;index"`
	User      *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Telephone string `json:"telephone" gorm:"uniqueIndex;not null;size:20"`
	Nci       string `json:"nci" gorm:"uniqueIndex;not null;size:13"`
	Adresse   string `json:"adresse" gorm:"not null;size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comptes []Compte `json:"comptes,omitempty" gorm:"foreignKey:ClientID"`
}
