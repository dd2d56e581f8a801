package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/higitec/laudo-service/internal/adapter/repository"
	"github.com/higitec/laudo-service/internal/domain/laudo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoLaudo(numero string, emissao time.Time) *laudo.Laudo {
	return &laudo.Laudo{
		NumeroCompleto:      numero,
		DataEmissao:         emissao,
		DataValidade:        emissao.AddDate(0, 0, 15),
		CpfCnpj:             "12345678901",
		NomeCliente:         "Transportadora Silva",
		Quantidade:          10,
		Modelo:              "Container 20 pés",
		QuantidadeUtilizada: 0,
		CreatedAt:           emissao,
		UpdatedAt:           emissao,
	}
}

func novoRepositorio(t *testing.T) *repository.FileLaudoRepository {
	t.Helper()
	return repository.NewFileLaudoRepository(filepath.Join(t.TempDir(), "laudos.json"))
}

func TestFileRepository_CreateEFindByNumero(t *testing.T) {
	repo := novoRepositorio(t)
	ctx := context.Background()
	emissao := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	l := novoLaudo("017000001", emissao)
	require.NoError(t, repo.Create(ctx, l))
	assert.Equal(t, int64(1), l.ID)

	// O laudo recuperado é idêntico ao inserido, campo a campo
	recuperado, err := repo.FindByNumero(ctx, "017000001")
	require.NoError(t, err)
	assert.Equal(t, l.NumeroCompleto, recuperado.NumeroCompleto)
	assert.Equal(t, l.CpfCnpj, recuperado.CpfCnpj)
	assert.Equal(t, l.NomeCliente, recuperado.NomeCliente)
	assert.Equal(t, l.Quantidade, recuperado.Quantidade)
	assert.Equal(t, l.Modelo, recuperado.Modelo)
	assert.True(t, l.DataEmissao.Equal(recuperado.DataEmissao))
	assert.True(t, l.DataValidade.Equal(recuperado.DataValidade))
}

func TestFileRepository_FindByNumero_NaoEncontrado(t *testing.T) {
	repo := novoRepositorio(t)

	_, err := repo.FindByNumero(context.Background(), "017999999")

	assert.ErrorIs(t, err, laudo.ErrLaudoNaoEncontrado)
}

func TestFileRepository_NumeroDuplicado(t *testing.T) {
	repo := novoRepositorio(t)
	ctx := context.Background()
	emissao := time.Now()

	require.NoError(t, repo.Create(ctx, novoLaudo("017000001", emissao)))

	err := repo.Create(ctx, novoLaudo("017000001", emissao))
	assert.ErrorIs(t, err, laudo.ErrNumeroDuplicado)

	// O armazenamento mantém exatamente um registro com o número
	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestFileRepository_IDsSequenciais(t *testing.T) {
	repo := novoRepositorio(t)
	ctx := context.Background()
	emissao := time.Now()

	primeiro := novoLaudo("017000001", emissao)
	segundo := novoLaudo("017000002", emissao)
	require.NoError(t, repo.Create(ctx, primeiro))
	require.NoError(t, repo.Create(ctx, segundo))

	assert.Equal(t, int64(1), primeiro.ID)
	assert.Equal(t, int64(2), segundo.ID)
}

func TestFileRepository_ListByDataEmissao(t *testing.T) {
	repo := novoRepositorio(t)
	ctx := context.Background()

	dia := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	outroDia := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, novoLaudo("017000001", dia)))
	require.NoError(t, repo.Create(ctx, novoLaudo("017000002", outroDia)))
	// Mesmo dia, horário diferente
	require.NoError(t, repo.Create(ctx, novoLaudo("017000003", dia.Add(5*time.Hour))))

	laudos, err := repo.ListByDataEmissao(ctx, dia)
	require.NoError(t, err)

	// Ordem de inserção preservada
	require.Len(t, laudos, 2)
	assert.Equal(t, "017000001", laudos[0].NumeroCompleto)
	assert.Equal(t, "017000003", laudos[1].NumeroCompleto)
}

func TestFileRepository_ListByDataEmissao_Vazio(t *testing.T) {
	repo := novoRepositorio(t)

	laudos, err := repo.ListByDataEmissao(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Empty(t, laudos)
}

func TestFileRepository_UpdateQuantidadeUtilizada(t *testing.T) {
	repo := novoRepositorio(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, novoLaudo("017000001", time.Now())))

	require.NoError(t, repo.UpdateQuantidadeUtilizada(ctx, "017000001", 7))

	recuperado, err := repo.FindByNumero(ctx, "017000001")
	require.NoError(t, err)
	assert.Equal(t, 7, recuperado.QuantidadeUtilizada)
}

func TestFileRepository_UpdateQuantidadeUtilizada_NaoEncontrado(t *testing.T) {
	repo := novoRepositorio(t)

	err := repo.UpdateQuantidadeUtilizada(context.Background(), "017999999", 1)

	assert.ErrorIs(t, err, laudo.ErrLaudoNaoEncontrado)
}

func TestFileRepository_ArquivoCorrompido(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "laudos.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ não é json"), 0o644))

	repo := repository.NewFileLaudoRepository(path)
	ctx := context.Background()

	// Documento ilegível nunca é tratado como armazenamento vazio
	_, err := repo.FindByNumero(ctx, "017000001")
	assert.ErrorIs(t, err, laudo.ErrArquivoCorrompido)

	_, err = repo.Count(ctx)
	assert.ErrorIs(t, err, laudo.ErrArquivoCorrompido)

	err = repo.Create(ctx, novoLaudo("017000001", time.Now()))
	assert.ErrorIs(t, err, laudo.ErrArquivoCorrompido)

	// O conteúdo original permanece intacto para diagnóstico
	conteudo, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{{{ não é json", string(conteudo))
}

func TestFileRepository_ImportarCargaInicial(t *testing.T) {
	repo := novoRepositorio(t)
	ctx := context.Background()

	assert.True(t, repo.Vazio())

	carga := []*laudo.Laudo{
		novoLaudo("017000001", time.Now()),
		novoLaudo("017000002", time.Now()),
	}
	carga[0].ID = 1
	carga[1].ID = 2

	require.NoError(t, repo.Importar(ctx, carga))

	assert.False(t, repo.Vazio())

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Emissões seguintes continuam a sequência da carga importada
	terceiro := novoLaudo("017000003", time.Now())
	require.NoError(t, repo.Create(ctx, terceiro))
	assert.Equal(t, int64(3), terceiro.ID)
}
