package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStoreRequest() StoreCompteRequest {
	return StoreCompteRequest{
		Type:         "epargne",
		SoldeInitial: 50000,
		Devise:       "FCFA",
		Client: StoreClientPayload{
			Titulaire: "Awa Diop",
			Email:     "awa.diop@example.sn",
			Telephone: "771234567",
			Nci:       "1234567890123",
			Adresse:   "Sicap Liberté 6, Dakar",
		},
	}
}

func TestStoreCompteRequestValid(t *testing.T) {
	assert.NoError(t, validStoreRequest().Validate())
}

func TestStoreCompteRequestRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StoreCompteRequest)
	}{
		{"unknown type", func(r *StoreCompteRequest) { r.Type = "livret" }},
		{"deposit below minimum", func(r *StoreCompteRequest) { r.SoldeInitial = 9999 }},
		{"missing deposit", func(r *StoreCompteRequest) { r.SoldeInitial = 0 }},
		{"unknown devise", func(r *StoreCompteRequest) { r.Devise = "GBP" }},
		{"bad email", func(r *StoreCompteRequest) { r.Client.Email = "not-an-email" }},
		{"foreign phone", func(r *StoreCompteRequest) { r.Client.Telephone = "+33612345678" }},
		{"phone with bad prefix", func(r *StoreCompteRequest) { r.Client.Telephone = "791234567" }},
		{"short nci", func(r *StoreCompteRequest) { r.Client.Nci = "12345" }},
		{"nci with letters", func(r *StoreCompteRequest) { r.Client.Nci = "12345678901Ab" }},
		{"missing titulaire without id", func(r *StoreCompteRequest) { r.Client.Titulaire = "" }},
		{"bad client id", func(r *StoreCompteRequest) { r.Client = StoreClientPayload{ID: "not-a-uuid"} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validStoreRequest()
			tc.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestStoreCompteRequestAcceptsClientID(t *testing.T) {
	req := validStoreRequest()
	// With an ID, the descriptive client fields may be omitted.
	req.Client = StoreClientPayload{ID: "b6b6e259-7248-4a41-9cf7-7c0bd76bd979"}
	assert.NoError(t, req.Validate())
}

func TestSenegalTelephoneFormats(t *testing.T) {
	valid := []string{"771234567", "781234567", "701234567", "761234567", "+221771234567", "0771234567"}
	for _, tel := range valid {
		req := validStoreRequest()
		req.Client.Telephone = tel
		assert.NoError(t, req.Validate(), "telephone %s should be accepted", tel)
	}
}

func TestSearchParamsDefaults(t *testing.T) {
	var params CompteSearchParams
	params.Normalize()

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, "dateCreation", params.Sort)
	assert.Equal(t, "desc", params.Order)
	require.NoError(t, params.Validate())
}

func TestSearchParamsBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CompteSearchParams)
	}{
		{"limit above 100", func(p *CompteSearchParams) { p.Limit = 101 }},
		{"negative page", func(p *CompteSearchParams) { p.Page = -1 }},
		{"unknown type", func(p *CompteSearchParams) { p.Type = "pel" }},
		{"unknown statut", func(p *CompteSearchParams) { p.Statut = "suspendu" }},
		{"unknown sort", func(p *CompteSearchParams) { p.Sort = "id" }},
		{"unknown order", func(p *CompteSearchParams) { p.Order = "up" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var params CompteSearchParams
			params.Normalize()
			tc.mutate(&params)
			assert.Error(t, params.Validate())
		})
	}
}

func TestFormatValidationErrorsNamesFields(t *testing.T) {
	req := validStoreRequest()
	req.Type = ""
	req.Client.Telephone = "123"

	err := req.Validate()
	require.Error(t, err)

	errs := FormatValidationErrors(err)
	require.NotEmpty(t, errs)

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Contains(t, fields, "Type")
	assert.Contains(t, fields, "Telephone")
	assert.Equal(t, "Le numéro de téléphone n'est pas un numéro sénégalais valide", fields["Telephone"])
}
