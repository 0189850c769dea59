package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/teranga-bank/banka_api/dto"
	"github.com/teranga-bank/banka_api/shared"
)

type CompteHandler struct {
	compteSvc CompteServiceInterface
}

func NewCompteHandler(compteSvc CompteServiceInterface) *CompteHandler {
	return &CompteHandler{compteSvc: compteSvc}
}

// @Summary Lister les comptes
// @Description Recherche paginée des comptes avec filtres, tri et liens de navigation
// @Tags comptes
// @Produce json
// @Param page query int false "Numéro de page" default(1)
// @Param limit query int false "Éléments par page (1-100)" default(10)
// @Param type query string false "Filtre par type" Enums(epargne, courant, cheque)
// @Param statut query string false "Filtre par statut" Enums(actif, bloque)
// @Param search query string false "Recherche sur le numéro de compte ou le titulaire"
// @Param sort query string false "Champ de tri" Enums(dateCreation, solde, titulaire) default(dateCreation)
// @Param order query string false "Sens du tri" Enums(asc, desc) default(desc)
// @Success 200 {object} shared.Response{data=[]dto.CompteResponse}
// @Router /api/v1/comptes [get]
func (h *CompteHandler) List(c *fiber.Ctx) error {
	var params dto.CompteSearchParams
	if err := c.QueryParser(&params); err != nil {
		return shared.NewBadRequestError(err, "Paramètres de requête invalides")
	}

	params.Normalize()
	if err := params.Validate(); err != nil {
		appErr := shared.NewBadRequestError(err, "Paramètres de requête invalides")
		appErr.Data = dto.FormatValidationErrors(err)
		return appErr
	}

	params.BaseURL = c.BaseURL() + c.Path()

	result, err := h.compteSvc.SearchAndPaginate(params)
	if err != nil {
		return err
	}

	return shared.ResponsePaginated(c, "Liste des comptes récupérée avec succès", result.Items, result.Pagination, result.Links)
}

// @Summary Consulter un compte
// @Description Détail d'un compte par son numéro
// @Tags comptes
// @Produce json
// @Param numero path string true "Numéro de compte (ex: C00042)"
// @Success 200 {object} shared.Response{data=dto.CompteResponse}
// @Router /api/v1/comptes/{numero} [get]
func (h *CompteHandler) GetByNumero(c *fiber.Ctx) error {
	numero := c.Params("numero")

	compte, err := h.compteSvc.GetByNumero(numero)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Compte récupéré avec succès", compte)
}

// @Summary Comptes d'un client
// @Description Tous les comptes rattachés au client identifié par son téléphone
// @Tags comptes
// @Produce json
// @Param telephone path string true "Téléphone du client (ex: 771234567)"
// @Success 200 {object} shared.Response{data=[]dto.CompteResponse}
// @Router /api/v1/comptes/client/{telephone} [get]
func (h *CompteHandler) GetByTelephone(c *fiber.Ctx) error {
	telephone := c.Params("telephone")

	comptes, err := h.compteSvc.GetByTelephone(telephone)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Comptes du client récupérés avec succès", comptes)
}

// @Summary Créer un compte
// @Description Ouvre un compte pour un client existant ou nouveau, avec dépôt initial
// @Tags comptes
// @Accept json
// @Produce json
// @Param storeCompteRequest body dto.StoreCompteRequest true "Données du compte à créer"
// @Success 201 {object} shared.Response{data=dto.CompteResponse}
// @Router /api/v1/comptes [post]
func (h *CompteHandler) Create(c *fiber.Ctx) error {
	var req dto.StoreCompteRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Corps de requête invalide")
	}

	if err := req.Validate(); err != nil {
		return shared.NewValidationError(dto.FormatValidationErrors(err))
	}

	compte, err := h.compteSvc.Create(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Compte créé avec succès", compte)
}
