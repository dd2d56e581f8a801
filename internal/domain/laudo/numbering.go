package laudo

import "fmt"

// Numerador gera números de laudo sequenciais com prefixo fixo do higienizador
// e sequência preenchida com zeros à esquerda
type Numerador struct {
	prefixo string
	digitos int
}

// NewNumerador cria um novo Numerador com o prefixo e a largura configurados
func NewNumerador(prefixo string, digitos int) *Numerador {
	return &Numerador{
		prefixo: prefixo,
		digitos: digitos,
	}
}

// Formatar monta o número completo para uma dada sequência
func (n *Numerador) Formatar(sequencia int64) string {
	return fmt.Sprintf("%s%0*d", n.prefixo, n.digitos, sequencia)
}

// Proximo calcula o número completo seguinte a partir do total de laudos já
// emitidos. A sequência só é considerada reservada depois que o registro for
// persistido pelo repositório.
func (n *Numerador) Proximo(totalAtual int64) string {
	return n.Formatar(totalAtual + 1)
}
