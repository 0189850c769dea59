package handlers

import (
	"github.com/teranga-bank/banka_api/dto"
)

// CompteServiceInterface is the compte surface the handlers depend on.
type CompteServiceInterface interface {
	SearchAndPaginate(params dto.CompteSearchParams) (*dto.CompteListResult, error)
	GetByNumero(numero string) (*dto.CompteResponse, error)
	GetByTelephone(telephone string) ([]dto.CompteResponse, error)
	Create(req dto.StoreCompteRequest) (*dto.CompteResponse, error)
}

// RateLimitServiceInterface is the admin surface of the per-minute gate.
type RateLimitServiceInterface interface {
	Stats() (*dto.RateLimitStats, error)
	Unblock(ip string) error
	CleanupOldRecords() (int64, error)
}
