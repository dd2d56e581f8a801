package laudo

import (
	"errors"
	"time"
)

var (
	ErrCpfCnpjVazio       = errors.New("CPF/CNPJ não pode ser vazio")
	ErrNomeClienteVazio   = errors.New("nome do cliente não pode ser vazio")
	ErrQuantidadeInvalida = errors.New("quantidade deve ser maior que zero")
	ErrModeloVazio        = errors.New("modelo não pode ser vazio")
	ErrValidadeInvalida   = errors.New("prazo de validade deve ser maior que zero")
)

// StatusValidade representa o resultado da avaliação de validade de um laudo
type StatusValidade string

const (
	// StatusValido indica que o laudo ainda pode ser utilizado
	StatusValido StatusValidade = "valido"

	// StatusVencidoPorData indica que o prazo de validade expirou
	StatusVencidoPorData StatusValidade = "vencido_por_data"

	// StatusVencidoPorQuantidade indica que a cota de utilizações foi esgotada
	StatusVencidoPorQuantidade StatusValidade = "vencido_por_quantidade"
)

// Laudo representa um laudo de higienização emitido para um cliente
type Laudo struct {
	ID                  int64     `json:"id"`
	NumeroCompleto      string    `json:"numero_completo"`
	DataEmissao         time.Time `json:"data_emissao"`
	DataValidade        time.Time `json:"data_validade"`
	CpfCnpj             string    `json:"cpf_cnpj"`
	NomeCliente         string    `json:"nome_cliente"`
	Quantidade          int       `json:"quantidade"`
	Modelo              string    `json:"modelo"`
	QuantidadeUtilizada int       `json:"quantidade_utilizada"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewLaudo cria um novo laudo com a data de validade calculada a partir da emissão
func NewLaudo(cpfCnpj, nomeCliente string, quantidade int, modelo string, dataEmissao time.Time, validadeDias int) (*Laudo, error) {
	if cpfCnpj == "" {
		return nil, ErrCpfCnpjVazio
	}
	if nomeCliente == "" {
		return nil, ErrNomeClienteVazio
	}
	if quantidade <= 0 {
		return nil, ErrQuantidadeInvalida
	}
	if modelo == "" {
		return nil, ErrModeloVazio
	}
	if validadeDias <= 0 {
		return nil, ErrValidadeInvalida
	}

	now := time.Now()
	return &Laudo{
		DataEmissao:         dataEmissao,
		DataValidade:        dataEmissao.AddDate(0, 0, validadeDias),
		CpfCnpj:             cpfCnpj,
		NomeCliente:         nomeCliente,
		Quantidade:          quantidade,
		Modelo:              modelo,
		QuantidadeUtilizada: 0,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// Avaliar verifica a validade do laudo em um dado instante.
// A verificação por data precede a verificação por quantidade: quando as duas
// condições valem ao mesmo tempo, o vencimento por data prevalece.
func (l *Laudo) Avaliar(agora time.Time) (bool, StatusValidade) {
	if agora.After(l.DataValidade) {
		return true, StatusVencidoPorData
	}
	if l.QuantidadeUtilizada >= l.Quantidade {
		return true, StatusVencidoPorQuantidade
	}
	return false, StatusValido
}

// IsVencido verifica se o laudo está vencido por data ou por quantidade
func (l *Laudo) IsVencido(agora time.Time) bool {
	vencido, _ := l.Avaliar(agora)
	return vencido
}

// RegistrarUtilizacao acumula uma quantidade utilizada no laudo.
// O total pode ultrapassar a quantidade autorizada; é assim que o vencimento
// por quantidade é detectado na avaliação.
func (l *Laudo) RegistrarUtilizacao(delta int) int {
	l.QuantidadeUtilizada += delta
	l.UpdatedAt = time.Now()
	return l.QuantidadeUtilizada
}
