package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/teranga-bank/banka_api/dto"
	"github.com/teranga-bank/banka_api/model"
	"github.com/teranga-bank/banka_api/shared"
)

type CompteService struct {
	context.DefaultService

	sqlSvc *SqlService
}

const COMPTE_SVC = "compte_svc"

const descriptionDepotInitial = "Ouverture de compte - Dépôt initial"

func (svc CompteService) Id() string {
	return COMPTE_SVC
}

func (svc *CompteService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CompteService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

// ==================== QUERY ENGINE ====================

// SearchAndPaginate materializes one page of account projections for the
// validated parameter set, with pagination metadata and navigation links.
func (svc *CompteService) SearchAndPaginate(params dto.CompteSearchParams) (*dto.CompteListResult, error) {
	comptes, total, err := svc.sqlSvc.SearchComptes(params)
	if err != nil {
		return nil, err
	}

	items, err := svc.projectComptes(comptes)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))

	return &dto.CompteListResult{
		Items: items,
		Pagination: dto.Pagination{
			CurrentPage:  params.Page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: params.Limit,
			HasNext:      params.Page < totalPages,
			HasPrevious:  params.Page > 1,
		},
		Links: buildLinks(params, totalPages),
	}, nil
}

func (svc *CompteService) GetByNumero(numero string) (*dto.CompteResponse, error) {
	compte, err := svc.sqlSvc.GetCompteByNumero(numero)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Compte", numero)
		}
		return nil, err
	}

	items, err := svc.projectComptes([]model.Compte{*compte})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (svc *CompteService) GetByTelephone(telephone string) ([]dto.CompteResponse, error) {
	comptes, err := svc.sqlSvc.GetComptesByTelephone(telephone)
	if err != nil {
		return nil, err
	}
	if len(comptes) == 0 {
		return nil, shared.NewNotFoundError("Comptes", "téléphone "+telephone)
	}
	return svc.projectComptes(comptes)
}

// projectComptes maps models to the public projection, resolving derived
// balances with one grouped aggregation for the whole page.
func (svc *CompteService) projectComptes(comptes []model.Compte) ([]dto.CompteResponse, error) {
	ids := make([]string, len(comptes))
	for i, compte := range comptes {
		ids[i] = compte.ID
	}

	soldes, err := svc.sqlSvc.SoldesForComptes(ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CompteResponse, len(comptes))
	for i, compte := range comptes {
		titulaire := ""
		if compte.Client != nil && compte.Client.User != nil {
			titulaire = compte.Client.User.Name
		}
		items[i] = dto.CompteResponse{
			ID:           compte.ID,
			NumeroCompte: compte.NumeroCompte,
			Titulaire:    titulaire,
			Type:         compte.Type,
			Solde:        soldes[compte.ID],
			Devise:       compte.Devise,
			DateCreation: compte.DateCreation,
			Statut:       compte.Statut,
			Metadata: dto.CompteMetadata{
				DerniereModification: compte.UpdatedAt,
				Version:              1,
			},
		}
	}
	return items, nil
}

func buildLinks(params dto.CompteSearchParams, totalPages int) dto.Links {
	lastPage := totalPages
	if lastPage < 1 {
		lastPage = 1
	}

	links := dto.Links{
		Self:  pageURL(params, params.Page),
		First: pageURL(params, 1),
		Last:  pageURL(params, lastPage),
	}
	if params.Page < totalPages {
		next := pageURL(params, params.Page+1)
		links.Next = &next
	}
	return links
}

func pageURL(params dto.CompteSearchParams, page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(params.Limit))
	if params.Type != "" {
		q.Set("type", params.Type)
	}
	if params.Statut != "" {
		q.Set("statut", params.Statut)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	q.Set("sort", params.Sort)
	q.Set("order", params.Order)

	return params.BaseURL + "?" + q.Encode()
}

// ==================== CREATION WORKFLOW ====================

// Create opens an account for a new or existing client and records the
// opening deposit. Account, client creation and deposit run in one
// transaction; the unique constraints on email/telephone/nci are the
// authority for duplicate clients under concurrent identical requests.
func (svc *CompteService) Create(req dto.StoreCompteRequest) (*dto.CompteResponse, error) {
	var existing *model.Client

	if req.Client.ID != "" {
		client, err := svc.sqlSvc.GetClientByID(req.Client.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, shared.NewNotFoundError("Client", req.Client.ID)
			}
			return nil, err
		}
		existing = client
	} else {
		client, err := svc.sqlSvc.FindClientByTelephoneOrEmail(req.Client.Telephone, req.Client.Email)
		if err != nil {
			return nil, err
		}
		existing = client

		if existing == nil {
			// Pre-checks give precise conflict messages; the constraints
			// remain the backstop for races.
			if err := svc.checkClientUniqueness(req.Client); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()
	var compte *model.Compte

	err := svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		client := existing
		if client == nil {
			created, err := svc.createClient(tx, req.Client, now)
			if err != nil {
				return err
			}
			client = created
		}

		numero, err := nextNumeroCompte(tx)
		if err != nil {
			return svc.sqlSvc.HandleError(err)
		}

		compteID, _ := uuid.NewV7()
		compte = &model.Compte{
			ID:           compteID.String(),
			NumeroCompte: numero,
			Type:         req.Type,
			Devise:       req.Devise,
			Statut:       model.CompteStatutActif,
			ClientID:     client.ID,
			Client:       client,
			DateCreation: now,
		}
		if err := tx.Create(compte).Error; err != nil {
			return svc.sqlSvc.HandleError(err)
		}

		txID, _ := uuid.NewV7()
		depot := &model.Transaction{
			ID:          txID.String(),
			CompteID:    compte.ID,
			Type:        model.TransactionTypeDepot,
			Montant:     req.SoldeInitial,
			Description: descriptionDepotInitial,
			Statut:      model.TransactionStatutComplete,
			Date:        now,
		}
		if err := tx.Create(depot).Error; err != nil {
			return svc.sqlSvc.HandleError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"numero_compte": compte.NumeroCompte,
		"client_id":     compte.ClientID,
		"type":          compte.Type,
	}).Info("Compte created")

	RecordCompteCreated(compte.Type, compte.Devise)

	items, err := svc.projectComptes([]model.Compte{*compte})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (svc *CompteService) checkClientUniqueness(payload dto.StoreClientPayload) error {
	taken, err := svc.sqlSvc.IsEmailTaken(payload.Email)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConflictError("Cet email est déjà utilisé")
	}

	taken, err = svc.sqlSvc.IsTelephoneTaken(payload.Telephone)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConflictError("Ce numéro de téléphone est déjà utilisé")
	}

	taken, err = svc.sqlSvc.IsNciTaken(payload.Nci)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConflictError("Ce NCI est déjà utilisé")
	}

	return nil
}

func (svc *CompteService) createClient(tx *gorm.DB, payload dto.StoreClientPayload, now time.Time) (*model.Client, error) {
	// Workflow-created identities never log in directly: the password is a
	// generated opaque value, hashed like any other credential.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID, _ := uuid.NewV7()
	user := &model.User{
		ID:       userID.String(),
		Name:     payload.Titulaire,
		Email:    payload.Email,
		Password: string(hashed),
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	clientID, _ := uuid.NewV7()
	client := &model.Client{
		ID:        clientID.String(),
		UserID:    user.ID,
		User:      user,
		Telephone: payload.Telephone,
		Nci:       payload.Nci,
		Adresse:   payload.Adresse,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(client).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return client, nil
}

// nextNumeroCompte assigns the next sequential account number (C00001,
// C00002, ...). The scan includes soft-deleted rows so numbers are never
// reused; the unique index on numero_compte backstops concurrent creations.
func nextNumeroCompte(tx *gorm.DB) (string, error) {
	var max int64
	err := tx.Model(&model.Compte{}).
		Select("COALESCE(MAX(CAST(SUBSTR(numero_compte, 2) AS INTEGER)), 0)").
		Scan(&max).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("C%05d", max+1), nil
}
