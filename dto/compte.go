package dto

import "time"

// CompteSearchParams carries the validated query parameters of
// GET /comptes. Normalize fills the documented defaults before validation.
type CompteSearchParams struct {
	Page   int    `query:"page" validate:"min=1"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
	Type   string `query:"type" validate:"omitempty,oneof=epargne courant cheque"`
	Statut string `query:"statut" validate:"omitempty,oneof=actif bloque"`
	Search string `query:"search" validate:"omitempty,max=255"`
	Sort   string `query:"sort" validate:"oneof=dateCreation solde titulaire"`
	Order  string `query:"order" validate:"oneof=asc desc"`

	// BaseURL is the absolute URL of the collection endpoint, used to build
	// navigation links. Set by the handler, never client-supplied.
	BaseURL string `query:"-" validate:"-"`
}

func (p *CompteSearchParams) Normalize() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
	if p.Sort == "" {
		p.Sort = "dateCreation"
	}
	if p.Order == "" {
		p.Order = "desc"
	}
}

func (p CompteSearchParams) Validate() error {
	return GetValidator().Struct(p)
}

// StoreClientPayload identifies an existing client by ID, or describes a new
// one. When ID is empty every other field is required.
type StoreClientPayload struct {
	ID        string `json:"id" validate:"omitempty,uuid"`
	Titulaire string `json:"titulaire" validate:"required_without=ID,omitempty,min=2,max=255"`
	Email     string `json:"email" validate:"required_without=ID,omitempty,email"`
	Telephone string `json:"telephone" validate:"required_without=ID,omitempty,senegal_telephone"`
	Nci       string `json:"nci" validate:"required_without=ID,omitempty,senegal_nci"`
	Adresse   string `json:"adresse" validate:"required_without=ID,omitempty,min=5,max=500"`
}

// StoreCompteRequest is the body of POST /comptes.
type StoreCompteRequest struct {
	Type         string             `json:"type" validate:"required,oneof=epargne courant cheque"`
	SoldeInitial float64            `json:"soldeInitial" validate:"required,min=10000"`
	Devise       string             `json:"devise" validate:"required,oneof=FCFA EUR USD"`
	Client       StoreClientPayload `json:"client" validate:"required"`
}

func (r StoreCompteRequest) Validate() error {
	return GetValidator().Struct(r)
}

// CompteResponse is the public projection of a compte. Solde is derived
// from the account's transactions at query time.
type CompteResponse struct {
	ID           string         `json:"id"`
	NumeroCompte string         `json:"numeroCompte"`
	Titulaire    string         `json:"titulaire"`
	Type         string         `json:"type"`
	Solde        float64        `json:"solde"`
	Devise       string         `json:"devise"`
	DateCreation time.Time      `json:"dateCreation"`
	Statut       string         `json:"statut"`
	Metadata     CompteMetadata `json:"metadata"`
}

type CompteMetadata struct {
	DerniereModification time.Time `json:"derniereModification"`
	Version              int       `json:"version"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrevious  bool  `json:"hasPrevious"`
}

type Links struct {
	Self  string  `json:"self"`
	Next  *string `json:"next"`
	First string  `json:"first"`
	Last  string  `json:"last"`
}

// CompteListResult is the query engine's output for one page.
type CompteListResult struct {
	Items      []CompteResponse `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Links      Links            `json:"links"`
}
