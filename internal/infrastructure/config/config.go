package config

import (
	"os"
	"strconv"
	"strings"
)

// Nomes das operações remotas que podem ser expostas pela API
const (
	OperacaoEmitir            = "emitir_laudo"
	OperacaoConsultar         = "consultar_laudo"
	OperacaoListar            = "listar_laudos"
	OperacaoRegistrarPassagem = "registrar_passagem"
)

// Backends de armazenamento suportados
const (
	StoragePostgres = "postgres"
	StorageArquivo  = "arquivo"
)

// Config contém as configurações do serviço de laudos
type Config struct {
	Port         string
	Storage      string
	FilePath     string
	SeedURL      string
	RedisAddr    string
	Prefixo      string
	NumDigitos   int
	ValidadeDias int
	DateLayout   string
	Operacoes    map[string]bool
}

// NewConfigFromEnv cria uma nova configuração a partir de variáveis de ambiente
func NewConfigFromEnv() *Config {
	numDigitos, _ := strconv.Atoi(getEnv("LAUDO_NUM_DIGITS", "6"))
	validadeDias, _ := strconv.Atoi(getEnv("LAUDO_VALIDADE_DIAS", "15"))

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Storage:      getEnv("LAUDO_STORAGE", StoragePostgres),
		FilePath:     getEnv("LAUDO_FILE_PATH", "laudos.json"),
		SeedURL:      getEnv("LAUDO_SEED_URL", ""),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		Prefixo:      getEnv("LAUDO_PREFIX", "017"),
		NumDigitos:   numDigitos,
		ValidadeDias: validadeDias,
		DateLayout:   dateLayout(getEnv("LAUDO_DATE_FORMAT", "br")),
		Operacoes:    parseOperacoes(getEnv("LAUDO_OPERATIONS", "")),
	}
}

// OperacaoHabilitada verifica se uma operação deve ser exposta pela API
func (c *Config) OperacaoHabilitada(nome string) bool {
	// Lista vazia expõe todas as operações
	if len(c.Operacoes) == 0 {
		return true
	}
	return c.Operacoes[nome]
}

// dateLayout traduz o formato configurado para um layout de data do Go.
// Revisões antigas do serviço usavam dd/mm/aaaa; as mais novas, ISO.
func dateLayout(formato string) string {
	if strings.EqualFold(formato, "iso") {
		return "2006-01-02"
	}
	return "02/01/2006"
}

// parseOperacoes interpreta a lista separada por vírgulas de operações expostas
func parseOperacoes(lista string) map[string]bool {
	operacoes := make(map[string]bool)
	for _, nome := range strings.Split(lista, ",") {
		nome = strings.TrimSpace(nome)
		if nome == "" {
			continue
		}
		operacoes[normalizarOperacao(nome)] = true
	}
	return operacoes
}

// normalizarOperacao resolve os apelidos históricos das operações
func normalizarOperacao(nome string) string {
	switch nome {
	case "gerar_laudo":
		return OperacaoEmitir
	case "obter_laudo":
		return OperacaoConsultar
	default:
		return nome
	}
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
