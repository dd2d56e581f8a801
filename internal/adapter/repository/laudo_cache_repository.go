package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/higitec/laudo-service/internal/domain/laudo"
	"github.com/higitec/laudo-service/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// cacheTTL limita por quanto tempo uma consulta de laudo fica em cache
const cacheTTL = 5 * time.Minute

// CachedLaudoRepository decora um laudo.Repository com cache de consultas por
// número no Redis. Mutação de quantidade invalida a entrada correspondente.
type CachedLaudoRepository struct {
	inner  laudo.Repository
	client *redis.Client
	logger logger.Logger
}

// NewCachedLaudoRepository cria uma nova instância de CachedLaudoRepository
func NewCachedLaudoRepository(inner laudo.Repository, client *redis.Client, logger logger.Logger) laudo.Repository {
	return &CachedLaudoRepository{
		inner:  inner,
		client: client,
		logger: logger,
	}
}

// cacheKey monta a chave de cache para um número de laudo
func cacheKey(numeroCompleto string) string {
	return fmt.Sprintf("laudo:%s", numeroCompleto)
}

// Create implementa o método Create da interface laudo.Repository
func (r *CachedLaudoRepository) Create(ctx context.Context, l *laudo.Laudo) error {
	return r.inner.Create(ctx, l)
}

// FindByNumero implementa o método FindByNumero da interface laudo.Repository
func (r *CachedLaudoRepository) FindByNumero(ctx context.Context, numeroCompleto string) (*laudo.Laudo, error) {
	data, err := r.client.Get(ctx, cacheKey(numeroCompleto)).Result()
	if err == nil {
		var l laudo.Laudo
		if err := json.Unmarshal([]byte(data), &l); err == nil {
			return &l, nil
		}
		// Entrada ilegível: descartar e seguir para o repositório
		r.client.Del(ctx, cacheKey(numeroCompleto))
	} else if err != redis.Nil {
		r.logger.Warn("falha ao consultar cache de laudos", "numero", numeroCompleto, "error", err)
	}

	l, err := r.inner.FindByNumero(ctx, numeroCompleto)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(l); err == nil {
		if err := r.client.Set(ctx, cacheKey(numeroCompleto), data, cacheTTL).Err(); err != nil {
			r.logger.Warn("falha ao gravar cache de laudos", "numero", numeroCompleto, "error", err)
		}
	}

	return l, nil
}

// ListByDataEmissao implementa o método ListByDataEmissao da interface laudo.Repository
func (r *CachedLaudoRepository) ListByDataEmissao(ctx context.Context, data time.Time) ([]*laudo.Laudo, error) {
	return r.inner.ListByDataEmissao(ctx, data)
}

// UpdateQuantidadeUtilizada implementa o método UpdateQuantidadeUtilizada da interface laudo.Repository
func (r *CachedLaudoRepository) UpdateQuantidadeUtilizada(ctx context.Context, numeroCompleto string, novaQuantidade int) error {
	if err := r.inner.UpdateQuantidadeUtilizada(ctx, numeroCompleto, novaQuantidade); err != nil {
		return err
	}

	// Invalidar a consulta em cache para não servir um total defasado
	if err := r.client.Del(ctx, cacheKey(numeroCompleto)).Err(); err != nil {
		r.logger.Warn("falha ao invalidar cache de laudos", "numero", numeroCompleto, "error", err)
	}

	return nil
}

// Count implementa o método Count da interface laudo.Repository
func (r *CachedLaudoRepository) Count(ctx context.Context) (int64, error) {
	return r.inner.Count(ctx)
}
