package laudo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/higitec/laudo-service/pkg/logger"
)

// maxTentativasEmissao limita as novas tentativas de numeração quando duas
// emissões concorrentes calculam a mesma sequência
const maxTentativasEmissao = 3

// Passagem é o resultado do registro de uma passagem em um laudo
type Passagem struct {
	NumeroCompleto string
	NovaQuantidade int
	Vencido        bool
	Status         StatusValidade
}

// Service concentra as regras de emissão, consulta e utilização de laudos
type Service struct {
	repo         Repository
	numerador    *Numerador
	validadeDias int
	logger       logger.Logger
}

// NewService cria um novo Service
func NewService(repo Repository, numerador *Numerador, validadeDias int, logger logger.Logger) *Service {
	return &Service{
		repo:         repo,
		numerador:    numerador,
		validadeDias: validadeDias,
		logger:       logger,
	}
}

// Emitir cria e persiste um novo laudo com número sequencial. A data de
// emissão e o número completo podem ser informados explicitamente; quando
// vazios, a data é o instante atual e o número sai do Numerador.
func (s *Service) Emitir(ctx context.Context, cpfCnpj, nomeCliente string, quantidade int, modelo string, dataEmissao *time.Time, numeroExplicito string) (*Laudo, error) {
	emissao := time.Now()
	if dataEmissao != nil {
		emissao = *dataEmissao
	}

	l, err := NewLaudo(cpfCnpj, nomeCliente, quantidade, modelo, emissao, s.validadeDias)
	if err != nil {
		return nil, err
	}

	if numeroExplicito != "" {
		l.NumeroCompleto = numeroExplicito
		if err := s.repo.Create(ctx, l); err != nil {
			return nil, err
		}
		s.logger.Info("laudo emitido com número explícito", "numero", l.NumeroCompleto)
		return l, nil
	}

	// O número só fica reservado quando a inserção é confirmada. Em caso de
	// colisão com uma emissão concorrente, a sequência é recalculada.
	for tentativa := 1; tentativa <= maxTentativasEmissao; tentativa++ {
		total, err := s.repo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("falha ao contar laudos: %w", err)
		}

		l.NumeroCompleto = s.numerador.Proximo(total)

		err = s.repo.Create(ctx, l)
		if err == nil {
			s.logger.Info("laudo emitido", "numero", l.NumeroCompleto, "cliente", l.NomeCliente)
			return l, nil
		}
		if !errors.Is(err, ErrNumeroDuplicado) {
			return nil, err
		}

		s.logger.Warn("colisão de numeração, recalculando sequência", "numero", l.NumeroCompleto, "tentativa", tentativa)
	}

	return nil, ErrNumeroDuplicado
}

// Consultar busca um laudo pelo número completo
func (s *Service) Consultar(ctx context.Context, numeroCompleto string) (*Laudo, error) {
	return s.repo.FindByNumero(ctx, numeroCompleto)
}

// Listar retorna os laudos emitidos em uma data
func (s *Service) Listar(ctx context.Context, dataEmissao time.Time) ([]*Laudo, error) {
	return s.repo.ListByDataEmissao(ctx, dataEmissao)
}

// RegistrarPassagem acumula uma utilização no laudo e retorna o novo total
// junto com a situação de validade após o registro. Nenhum teto é aplicado ao
// total: ultrapassar a quantidade autorizada é o que caracteriza o vencimento
// por quantidade.
func (s *Service) RegistrarPassagem(ctx context.Context, numeroCompleto string, delta int) (*Passagem, error) {
	if delta <= 0 {
		delta = 1
	}

	l, err := s.repo.FindByNumero(ctx, numeroCompleto)
	if err != nil {
		return nil, err
	}

	novaQuantidade := l.RegistrarUtilizacao(delta)
	if err := s.repo.UpdateQuantidadeUtilizada(ctx, numeroCompleto, novaQuantidade); err != nil {
		return nil, err
	}

	vencido, status := l.Avaliar(time.Now())
	s.logger.Info("passagem registrada", "numero", numeroCompleto, "total", novaQuantidade, "status", status)

	return &Passagem{
		NumeroCompleto: numeroCompleto,
		NovaQuantidade: novaQuantidade,
		Vencido:        vencido,
		Status:         status,
	}, nil
}
