package laudo

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrLaudoNaoEncontrado indica que nenhum laudo existe com o número informado
	ErrLaudoNaoEncontrado = errors.New("laudo não encontrado")

	// ErrNumeroDuplicado indica colisão de número completo na inserção
	ErrNumeroDuplicado = errors.New("número de laudo já existente")

	// ErrArquivoCorrompido indica que o documento de armazenamento não pôde ser
	// interpretado. Nunca deve ser tratado como armazenamento vazio.
	ErrArquivoCorrompido = errors.New("arquivo de laudos corrompido")

	// ErrOrigemIndisponivel indica falha ao buscar o documento remoto de carga inicial
	ErrOrigemIndisponivel = errors.New("origem de dados remota indisponível")
)

// Repository define as operações de persistência para laudos
type Repository interface {
	// Create persiste um novo laudo, atribuindo o ID. Falha com
	// ErrNumeroDuplicado se o número completo já existir.
	Create(ctx context.Context, l *Laudo) error

	// FindByNumero busca um laudo pelo número completo. Falha com
	// ErrLaudoNaoEncontrado se não existir.
	FindByNumero(ctx context.Context, numeroCompleto string) (*Laudo, error)

	// ListByDataEmissao retorna os laudos emitidos em uma data, na ordem de
	// inserção. Retorna uma lista vazia quando não há laudos na data.
	ListByDataEmissao(ctx context.Context, data time.Time) ([]*Laudo, error)

	// UpdateQuantidadeUtilizada sobrescreve o total utilizado de um laudo.
	// Falha com ErrLaudoNaoEncontrado se o laudo não existir.
	UpdateQuantidadeUtilizada(ctx context.Context, numeroCompleto string, novaQuantidade int) error

	// Count retorna o total de laudos já persistidos
	Count(ctx context.Context) (int64, error)
}
