package config_test

import (
	"testing"

	"github.com/higitec/laudo-service/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigFromEnv_Padroes(t *testing.T) {
	cfg := config.NewConfigFromEnv()

	assert.Equal(t, "017", cfg.Prefixo)
	assert.Equal(t, 6, cfg.NumDigitos)
	assert.Equal(t, 15, cfg.ValidadeDias)
	assert.Equal(t, "02/01/2006", cfg.DateLayout)
	assert.Equal(t, config.StoragePostgres, cfg.Storage)
}

func TestNewConfigFromEnv_FormatoISO(t *testing.T) {
	t.Setenv("LAUDO_DATE_FORMAT", "iso")

	cfg := config.NewConfigFromEnv()

	assert.Equal(t, "2006-01-02", cfg.DateLayout)
}

func TestOperacaoHabilitada_TodasPorPadrao(t *testing.T) {
	cfg := config.NewConfigFromEnv()

	assert.True(t, cfg.OperacaoHabilitada(config.OperacaoEmitir))
	assert.True(t, cfg.OperacaoHabilitada(config.OperacaoConsultar))
	assert.True(t, cfg.OperacaoHabilitada(config.OperacaoListar))
	assert.True(t, cfg.OperacaoHabilitada(config.OperacaoRegistrarPassagem))
}

func TestOperacaoHabilitada_Subconjunto(t *testing.T) {
	t.Setenv("LAUDO_OPERATIONS", "emitir_laudo, consultar_laudo")

	cfg := config.NewConfigFromEnv()

	assert.True(t, cfg.OperacaoHabilitada(config.OperacaoEmitir))
	assert.True(t, cfg.OperacaoHabilitada(config.OperacaoConsultar))
	assert.False(t, cfg.OperacaoHabilitada(config.OperacaoListar))
	assert.False(t, cfg.OperacaoHabilitada(config.OperacaoRegistrarPassagem))
}

func TestOperacaoHabilitada_ApelidosHistoricos(t *testing.T) {
	// gerar_laudo e obter_laudo são apelidos de emitir_laudo e consultar_laudo
	t.Setenv("LAUDO_OPERATIONS", "gerar_laudo,obter_laudo")

	cfg := config.NewConfigFromEnv()

	assert.True(t, cfg.OperacaoHabilitada(config.OperacaoEmitir))
	assert.True(t, cfg.OperacaoHabilitada(config.OperacaoConsultar))
	assert.False(t, cfg.OperacaoHabilitada(config.OperacaoRegistrarPassagem))
}
