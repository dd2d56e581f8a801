package route

import (
	"github.com/gin-gonic/gin"
	"github.com/higitec/laudo-service/internal/adapter/api/controller"
	"github.com/higitec/laudo-service/internal/infrastructure/config"
)

// SetupLaudoRoutes configura as rotas para o módulo de laudos. Apenas as
// operações habilitadas na configuração são expostas.
func SetupLaudoRoutes(router *gin.RouterGroup, cfg *config.Config, laudoController *controller.LaudoController) {
	laudoRouter := router.Group("/laudos")
	{
		if cfg.OperacaoHabilitada(config.OperacaoEmitir) {
			laudoRouter.POST("", laudoController.Emitir)
		}
		if cfg.OperacaoHabilitada(config.OperacaoListar) {
			laudoRouter.GET("", laudoController.Listar)
		}
		if cfg.OperacaoHabilitada(config.OperacaoConsultar) {
			laudoRouter.GET("/:numero", laudoController.Consultar)
		}
		if cfg.OperacaoHabilitada(config.OperacaoRegistrarPassagem) {
			laudoRouter.POST("/:numero/passagens", laudoController.RegistrarPassagem)
		}
	}
}
