package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/higitec/laudo-service/internal/domain/laudo"
)

// FileLaudoRepository implementa a interface laudo.Repository sobre um único
// documento JSON com a lista ordenada de laudos. Todas as operações passam
// pelo mutex da instância: o documento é reescrito por inteiro a cada mutação
// e a unicidade do número completo é verificada antes de gravar.
type FileLaudoRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileLaudoRepository cria uma nova instância de FileLaudoRepository
func NewFileLaudoRepository(path string) *FileLaudoRepository {
	return &FileLaudoRepository{
		path: path,
	}
}

// Create implementa o método Create da interface laudo.Repository
func (r *FileLaudoRepository) Create(ctx context.Context, l *laudo.Laudo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	laudos, err := r.load()
	if err != nil {
		return err
	}

	var maxID int64
	for _, existente := range laudos {
		if existente.NumeroCompleto == l.NumeroCompleto {
			return laudo.ErrNumeroDuplicado
		}
		if existente.ID > maxID {
			maxID = existente.ID
		}
	}

	l.ID = maxID + 1
	laudos = append(laudos, l)

	return r.save(laudos)
}

// FindByNumero implementa o método FindByNumero da interface laudo.Repository
func (r *FileLaudoRepository) FindByNumero(ctx context.Context, numeroCompleto string) (*laudo.Laudo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	laudos, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, l := range laudos {
		if l.NumeroCompleto == numeroCompleto {
			return l, nil
		}
	}

	return nil, laudo.ErrLaudoNaoEncontrado
}

// ListByDataEmissao implementa o método ListByDataEmissao da interface laudo.Repository
func (r *FileLaudoRepository) ListByDataEmissao(ctx context.Context, data time.Time) ([]*laudo.Laudo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	laudos, err := r.load()
	if err != nil {
		return nil, err
	}

	// Varredura linear comparando o dia da emissão, na ordem de inserção
	resultado := []*laudo.Laudo{}
	for _, l := range laudos {
		if mesmoDia(l.DataEmissao, data) {
			resultado = append(resultado, l)
		}
	}

	return resultado, nil
}

// UpdateQuantidadeUtilizada implementa o método UpdateQuantidadeUtilizada da interface laudo.Repository
func (r *FileLaudoRepository) UpdateQuantidadeUtilizada(ctx context.Context, numeroCompleto string, novaQuantidade int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	laudos, err := r.load()
	if err != nil {
		return err
	}

	for _, l := range laudos {
		if l.NumeroCompleto == numeroCompleto {
			l.QuantidadeUtilizada = novaQuantidade
			l.UpdatedAt = time.Now()
			return r.save(laudos)
		}
	}

	return laudo.ErrLaudoNaoEncontrado
}

// Count implementa o método Count da interface laudo.Repository
func (r *FileLaudoRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	laudos, err := r.load()
	if err != nil {
		return 0, err
	}

	return int64(len(laudos)), nil
}

// Vazio verifica se o documento local ainda não existe, caso em que a carga
// inicial remota pode ser aplicada
func (r *FileLaudoRepository) Vazio() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := os.Stat(r.path)
	return os.IsNotExist(err)
}

// Importar grava de uma só vez os laudos obtidos da carga inicial remota
func (r *FileLaudoRepository) Importar(ctx context.Context, laudos []*laudo.Laudo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.save(laudos)
}

// load lê o documento JSON inteiro. Um arquivo inexistente é um armazenamento
// vazio; um arquivo ilegível NÃO é: falha de parse vira ErrArquivoCorrompido
// para que o próximo save não destrua os dados existentes.
func (r *FileLaudoRepository) load() ([]*laudo.Laudo, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*laudo.Laudo{}, nil
		}
		return nil, fmt.Errorf("falha ao ler arquivo de laudos: %w", err)
	}

	var laudos []*laudo.Laudo
	if err := json.Unmarshal(data, &laudos); err != nil {
		return nil, fmt.Errorf("%w: %v", laudo.ErrArquivoCorrompido, err)
	}

	return laudos, nil
}

// save reescreve o documento por inteiro, gravando em um arquivo temporário e
// renomeando em seguida para não deixar um documento pela metade
func (r *FileLaudoRepository) save(laudos []*laudo.Laudo) error {
	data, err := json.MarshalIndent(laudos, "", "  ")
	if err != nil {
		return fmt.Errorf("falha ao serializar laudos: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "laudos-*.json")
	if err != nil {
		return fmt.Errorf("falha ao criar arquivo temporário: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("falha ao gravar arquivo de laudos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("falha ao fechar arquivo de laudos: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("falha ao substituir arquivo de laudos: %w", err)
	}

	return nil
}

// mesmoDia compara duas datas ignorando o horário
func mesmoDia(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
