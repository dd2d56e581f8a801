package seed_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/higitec/laudo-service/internal/domain/laudo"
	"github.com/higitec/laudo-service/internal/infrastructure/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_DocumentoValido(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "numero_completo": "017000001", "nome_cliente": "Transportadora Silva", "quantidade": 10},
			{"id": 2, "numero_completo": "017000002", "nome_cliente": "Cliente B", "quantidade": 5}
		]`))
	}))
	defer server.Close()

	laudos, err := seed.NewFetcher().Fetch(server.URL)

	require.NoError(t, err)
	require.Len(t, laudos, 2)
	assert.Equal(t, "017000001", laudos[0].NumeroCompleto)
	assert.Equal(t, 10, laudos[0].Quantidade)
}

func TestFetch_StatusDeErro(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := seed.NewFetcher().Fetch(server.URL)

	assert.ErrorIs(t, err, laudo.ErrOrigemIndisponivel)
}

func TestFetch_DocumentoInvalido(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("não é json"))
	}))
	defer server.Close()

	_, err := seed.NewFetcher().Fetch(server.URL)

	assert.ErrorIs(t, err, laudo.ErrOrigemIndisponivel)
}

func TestFetch_OrigemInacessivel(t *testing.T) {
	// Servidor já encerrado: a conexão falha
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := seed.NewFetcher().Fetch(url)

	assert.ErrorIs(t, err, laudo.ErrOrigemIndisponivel)
}
