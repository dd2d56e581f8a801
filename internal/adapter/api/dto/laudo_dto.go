package dto

import (
	"time"

	"github.com/higitec/laudo-service/internal/domain/laudo"
)

// EmitirLaudoRequest representa os dados para emitir um novo laudo
type EmitirLaudoRequest struct {
	CpfCnpj     string `json:"cpf_cnpj" binding:"required"`
	NomeCliente string `json:"nome_cliente" binding:"required"`
	Quantidade  int    `json:"quantidade" binding:"required,gt=0"`
	Modelo      string `json:"modelo" binding:"required"`

	// Campos opcionais: quando vazios, a data é o instante atual e o número
	// sai da sequência do higienizador
	DataEmissao    string `json:"data_emissao,omitempty"`
	NumeroCompleto string `json:"numero_completo,omitempty"`
}

// RegistrarPassagemRequest representa os dados para registrar uma passagem
type RegistrarPassagemRequest struct {
	Quantidade int `json:"quantidade"`
}

// LaudoResponse representa a resposta com os dados de um laudo
type LaudoResponse struct {
	ID                  int64  `json:"id"`
	NumeroCompleto      string `json:"numero_completo"`
	DataEmissao         string `json:"data_emissao"`
	DataValidade        string `json:"data_validade"`
	CpfCnpj             string `json:"cpf_cnpj"`
	NomeCliente         string `json:"nome_cliente"`
	Quantidade          int    `json:"quantidade"`
	Modelo              string `json:"modelo"`
	QuantidadeUtilizada int    `json:"quantidade_utilizada"`
	Vencido             bool   `json:"vencido"`
	Status              string `json:"status"`
}

// EmitirLaudoResponse representa a resposta da emissão de um laudo
type EmitirLaudoResponse struct {
	Mensagem string        `json:"mensagem"`
	Laudo    LaudoResponse `json:"laudo"`
}

// LaudoListResponse representa a resposta com uma lista de laudos
type LaudoListResponse struct {
	Laudos []LaudoResponse `json:"laudos"`
	Total  int             `json:"total"`
}

// PassagemResponse representa a resposta do registro de uma passagem
type PassagemResponse struct {
	NumeroCompleto      string `json:"numero_completo"`
	QuantidadeUtilizada int    `json:"quantidade_utilizada"`
	Vencido             bool   `json:"vencido"`
	Status              string `json:"status"`
}

// NewLaudoResponse cria um novo LaudoResponse a partir de um laudo, formatando
// as datas no layout configurado
func NewLaudoResponse(l *laudo.Laudo, dateLayout string) *LaudoResponse {
	vencido, status := l.Avaliar(time.Now())
	return &LaudoResponse{
		ID:                  l.ID,
		NumeroCompleto:      l.NumeroCompleto,
		DataEmissao:         l.DataEmissao.Format(dateLayout),
		DataValidade:        l.DataValidade.Format(dateLayout),
		CpfCnpj:             l.CpfCnpj,
		NomeCliente:         l.NomeCliente,
		Quantidade:          l.Quantidade,
		Modelo:              l.Modelo,
		QuantidadeUtilizada: l.QuantidadeUtilizada,
		Vencido:             vencido,
		Status:              string(status),
	}
}

// NewLaudoListResponse cria um novo LaudoListResponse
func NewLaudoListResponse(laudos []*laudo.Laudo, dateLayout string) *LaudoListResponse {
	response := &LaudoListResponse{
		Laudos: make([]LaudoResponse, 0, len(laudos)),
		Total:  len(laudos),
	}

	for _, l := range laudos {
		response.Laudos = append(response.Laudos, *NewLaudoResponse(l, dateLayout))
	}

	return response
}

// NewPassagemResponse cria um novo PassagemResponse a partir do resultado do serviço
func NewPassagemResponse(p *laudo.Passagem) *PassagemResponse {
	return &PassagemResponse{
		NumeroCompleto:      p.NumeroCompleto,
		QuantidadeUtilizada: p.NovaQuantidade,
		Vencido:             p.Vencido,
		Status:              string(p.Status),
	}
}
