package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/higitec/laudo-service/internal/domain/laudo"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLaudoRepository implementa a interface laudo.Repository sobre PostgreSQL
type PostgresLaudoRepository struct {
	db *pgxpool.Pool
}

// NewPostgresLaudoRepository cria uma nova instância de PostgresLaudoRepository
func NewPostgresLaudoRepository(db *pgxpool.Pool) laudo.Repository {
	return &PostgresLaudoRepository{
		db: db,
	}
}

// Create implementa o método Create da interface laudo.Repository
func (r *PostgresLaudoRepository) Create(ctx context.Context, l *laudo.Laudo) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	query := `
		INSERT INTO laudos (
			numero_completo, data_emissao, data_validade, cpf_cnpj,
			nome_cliente, quantidade, modelo, quantidade_utilizada,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err = conn.QueryRow(ctx, query,
		l.NumeroCompleto, l.DataEmissao, l.DataValidade, l.CpfCnpj,
		l.NomeCliente, l.Quantidade, l.Modelo, l.QuantidadeUtilizada,
		l.CreatedAt, l.UpdatedAt).Scan(&l.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return laudo.ErrNumeroDuplicado
		}
		return fmt.Errorf("falha ao inserir laudo: %w", err)
	}

	return nil
}

// FindByNumero implementa o método FindByNumero da interface laudo.Repository
func (r *PostgresLaudoRepository) FindByNumero(ctx context.Context, numeroCompleto string) (*laudo.Laudo, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	query := `
		SELECT
			id, numero_completo, data_emissao, data_validade, cpf_cnpj,
			nome_cliente, quantidade, modelo, quantidade_utilizada,
			created_at, updated_at
		FROM laudos
		WHERE numero_completo = $1
	`

	var l laudo.Laudo
	err = conn.QueryRow(ctx, query, numeroCompleto).Scan(
		&l.ID, &l.NumeroCompleto, &l.DataEmissao, &l.DataValidade, &l.CpfCnpj,
		&l.NomeCliente, &l.Quantidade, &l.Modelo, &l.QuantidadeUtilizada,
		&l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, laudo.ErrLaudoNaoEncontrado
		}
		return nil, fmt.Errorf("falha ao buscar laudo: %w", err)
	}

	return &l, nil
}

// ListByDataEmissao implementa o método ListByDataEmissao da interface laudo.Repository
func (r *PostgresLaudoRepository) ListByDataEmissao(ctx context.Context, data time.Time) ([]*laudo.Laudo, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	// A comparação é feita pelo dia da emissão, ignorando o horário
	query := `
		SELECT
			id, numero_completo, data_emissao, data_validade, cpf_cnpj,
			nome_cliente, quantidade, modelo, quantidade_utilizada,
			created_at, updated_at
		FROM laudos
		WHERE data_emissao::date = $1::date
		ORDER BY id
	`

	rows, err := conn.Query(ctx, query, data)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar laudos: %w", err)
	}
	defer rows.Close()

	// Processar os resultados
	laudos := []*laudo.Laudo{}
	for rows.Next() {
		var l laudo.Laudo
		err = rows.Scan(
			&l.ID, &l.NumeroCompleto, &l.DataEmissao, &l.DataValidade, &l.CpfCnpj,
			&l.NomeCliente, &l.Quantidade, &l.Modelo, &l.QuantidadeUtilizada,
			&l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler laudo: %w", err)
		}
		laudos = append(laudos, &l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar laudos: %w", err)
	}

	return laudos, nil
}

// UpdateQuantidadeUtilizada implementa o método UpdateQuantidadeUtilizada da interface laudo.Repository
func (r *PostgresLaudoRepository) UpdateQuantidadeUtilizada(ctx context.Context, numeroCompleto string, novaQuantidade int) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx,
		"UPDATE laudos SET quantidade_utilizada = $1, updated_at = $2 WHERE numero_completo = $3",
		novaQuantidade, time.Now(), numeroCompleto)
	if err != nil {
		return fmt.Errorf("falha ao atualizar quantidade utilizada: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return laudo.ErrLaudoNaoEncontrado
	}

	return nil
}

// Count implementa o método Count da interface laudo.Repository
func (r *PostgresLaudoRepository) Count(ctx context.Context) (int64, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	var count int64
	err = conn.QueryRow(ctx, "SELECT COUNT(*) FROM laudos").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("falha ao contar laudos: %w", err)
	}

	return count, nil
}
