package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/higitec/laudo-service/internal/domain/laudo"
)

// Fetcher baixa o documento JSON hospedado com a carga inicial de laudos
type Fetcher struct {
	client *http.Client
}

// NewFetcher cria um novo Fetcher com timeout de requisição
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch baixa e interpreta o documento remoto de laudos. Qualquer falha é
// reportada como laudo.ErrOrigemIndisponivel: cabe ao chamador decidir entre
// começar com o armazenamento vazio ou abortar.
func (f *Fetcher) Fetch(url string) ([]*laudo.Laudo, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", laudo.ErrOrigemIndisponivel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", laudo.ErrOrigemIndisponivel, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", laudo.ErrOrigemIndisponivel, err)
	}

	var laudos []*laudo.Laudo
	if err := json.Unmarshal(data, &laudos); err != nil {
		return nil, fmt.Errorf("%w: documento inválido: %v", laudo.ErrOrigemIndisponivel, err)
	}

	return laudos, nil
}
