package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/higitec/laudo-service/internal/adapter/api/dto"
	"github.com/higitec/laudo-service/internal/domain/laudo"
	"github.com/higitec/laudo-service/pkg/logger"
)

// LaudoController manipula as requisições relacionadas a laudos
type LaudoController struct {
	service    *laudo.Service
	dateLayout string
	logger     logger.Logger
}

// NewLaudoController cria uma nova instância de LaudoController
func NewLaudoController(service *laudo.Service, dateLayout string, logger logger.Logger) *LaudoController {
	return &LaudoController{
		service:    service,
		dateLayout: dateLayout,
		logger:     logger,
	}
}

// @Summary Emitir laudo
// @Description Emite um novo laudo com número sequencial do higienizador
// @Tags Laudos
// @Accept json
// @Produce json
// @Param laudo body dto.EmitirLaudoRequest true "Dados do laudo"
// @Success 201 {object} dto.EmitirLaudoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /laudos [post]
func (c *LaudoController) Emitir(ctx *gin.Context) {
	var req dto.EmitirLaudoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	var dataEmissao *time.Time
	if req.DataEmissao != "" {
		data, err := time.Parse(c.dateLayout, req.DataEmissao)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "data de emissão inválida", "formato esperado: "+c.dateLayout))
			return
		}
		dataEmissao = &data
	}

	l, err := c.service.Emitir(ctx.Request.Context(), req.CpfCnpj, req.NomeCliente, req.Quantidade, req.Modelo, dataEmissao, req.NumeroCompleto)
	if err != nil {
		c.respondError(ctx, err, "falha ao emitir laudo")
		return
	}

	ctx.JSON(http.StatusCreated, dto.EmitirLaudoResponse{
		Mensagem: "Laudo emitido com sucesso! Nº " + l.NumeroCompleto,
		Laudo:    *dto.NewLaudoResponse(l, c.dateLayout),
	})
}

// @Summary Consultar laudo
// @Description Busca um laudo pelo número completo
// @Tags Laudos
// @Produce json
// @Param numero path string true "Número completo do laudo"
// @Success 200 {object} dto.LaudoResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /laudos/{numero} [get]
func (c *LaudoController) Consultar(ctx *gin.Context) {
	numero := ctx.Param("numero")

	l, err := c.service.Consultar(ctx.Request.Context(), numero)
	if err != nil {
		c.respondError(ctx, err, "falha ao consultar laudo")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewLaudoResponse(l, c.dateLayout))
}

// @Summary Listar laudos
// @Description Lista os laudos emitidos em uma data
// @Tags Laudos
// @Produce json
// @Param data_emissao query string true "Data de emissão"
// @Success 200 {object} dto.LaudoListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /laudos [get]
func (c *LaudoController) Listar(ctx *gin.Context) {
	dataParam := ctx.Query("data_emissao")
	if dataParam == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "data de emissão não informada", ""))
		return
	}

	data, err := time.Parse(c.dateLayout, dataParam)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "data de emissão inválida", "formato esperado: "+c.dateLayout))
		return
	}

	laudos, err := c.service.Listar(ctx.Request.Context(), data)
	if err != nil {
		c.respondError(ctx, err, "falha ao listar laudos")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewLaudoListResponse(laudos, c.dateLayout))
}

// @Summary Registrar passagem
// @Description Registra a utilização de um laudo e retorna o total acumulado e a situação de validade
// @Tags Laudos
// @Accept json
// @Produce json
// @Param numero path string true "Número completo do laudo"
// @Param passagem body dto.RegistrarPassagemRequest false "Quantidade utilizada"
// @Success 200 {object} dto.PassagemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /laudos/{numero}/passagens [post]
func (c *LaudoController) RegistrarPassagem(ctx *gin.Context) {
	numero := ctx.Param("numero")

	// Corpo opcional: sem corpo, a passagem vale uma utilização
	var req dto.RegistrarPassagemRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
			return
		}
	}

	passagem, err := c.service.RegistrarPassagem(ctx.Request.Context(), numero, req.Quantidade)
	if err != nil {
		c.respondError(ctx, err, "falha ao registrar passagem")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPassagemResponse(passagem))
}

// respondError traduz os erros do domínio para as respostas HTTP. Não
// encontrado, duplicado, corrompido e origem indisponível precisam ser
// distinguíveis entre si e de uma falha genérica.
func (c *LaudoController) respondError(ctx *gin.Context, err error, mensagem string) {
	switch {
	case errors.Is(err, laudo.ErrLaudoNaoEncontrado):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "laudo não encontrado", ""))
	case errors.Is(err, laudo.ErrNumeroDuplicado):
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "número de laudo já existente", ""))
	case errors.Is(err, laudo.ErrArquivoCorrompido):
		c.logger.Error("arquivo de laudos corrompido", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "arquivo de laudos corrompido", err.Error()))
	case errors.Is(err, laudo.ErrOrigemIndisponivel):
		ctx.JSON(http.StatusBadGateway, dto.NewErrorResponse(http.StatusBadGateway, "origem de dados remota indisponível", err.Error()))
	case errors.Is(err, laudo.ErrCpfCnpjVazio),
		errors.Is(err, laudo.ErrNomeClienteVazio),
		errors.Is(err, laudo.ErrQuantidadeInvalida),
		errors.Is(err, laudo.ErrModeloVazio),
		errors.Is(err, laudo.ErrValidadeInvalida):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, err.Error(), ""))
	default:
		c.logger.Error(mensagem, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, mensagem, err.Error()))
	}
}
