package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced in the envelope's "error" field.
const (
	KindValidation        = "VALIDATION_ERROR"
	KindNotFound          = "NOT_FOUND"
	KindConflict          = "CONFLICT"
	KindCompteBloque      = "COMPTE_BLOQUE"
	KindSoldeInsuffisant  = "SOLDE_INSUFFISANT"
	KindUnauthorized      = "UNAUTHORIZED"
	KindBadRequest        = "BAD_REQUEST"
	KindRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	KindRatingLimit       = "RATING_LIMIT_EXCEEDED"
)

// AppError is a status-coded domain error. Handlers return it as-is; the
// HTTP error handler maps it to the envelope. Message is safe to show to
// clients, Err is the internal cause and only ever logged.
type AppError struct {
	StatusCode int
	Kind       string
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NewValidationError(errs interface{}) *AppError {
	return &AppError{
		StatusCode: http.StatusUnprocessableEntity,
		Kind:       KindValidation,
		Message:    "Les données fournies sont invalides",
		Data:       errs,
	}
}

func NewNotFoundError(resource, identifier string) *AppError {
	message := resource + " non trouvé"
	if identifier != "" {
		message = fmt.Sprintf("%s avec l'identifiant '%s' non trouvé", resource, identifier)
	}
	return &AppError{StatusCode: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	if message == "" {
		message = "Conflit de données"
	}
	return &AppError{StatusCode: http.StatusConflict, Kind: KindConflict, Message: message}
}

func NewCompteBloqueError(numeroCompte string, motif string) *AppError {
	message := fmt.Sprintf("Le compte %s est bloqué", numeroCompte)
	if motif != "" {
		message += " : " + motif
	}
	return &AppError{StatusCode: http.StatusLocked, Kind: KindCompteBloque, Message: message}
}

func NewSoldeInsuffisantError(soldeActuel, montantDemande float64) *AppError {
	return &AppError{
		StatusCode: http.StatusPaymentRequired,
		Kind:       KindSoldeInsuffisant,
		Message:    fmt.Sprintf("Solde insuffisant. Solde actuel : %.2f, Montant demandé : %.2f", soldeActuel, montantDemande),
	}
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Accès non autorisé"
	}
	return &AppError{StatusCode: http.StatusUnauthorized, Kind: KindUnauthorized, Message: message}
}

func NewBadRequestError(err error, message string) *AppError {
	if message == "" {
		message = "Requête invalide"
	}
	return &AppError{StatusCode: http.StatusBadRequest, Kind: KindBadRequest, Message: message, Err: err}
}
