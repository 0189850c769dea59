package model

import "time"

// User is the identity behind a client: display name and login email.
// Users created through the account opening workflow get a generated
// opaque password, hashed before storage.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:text;not null"`
	Name      string `json:"name" gorm:"not null;size:255"`
	Email     string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
