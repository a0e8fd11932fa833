package workbook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrFetchFailed indica falha ao obter o arquivo da fonte configurada.
var ErrFetchFailed = errors.New("falha ao carregar arquivo database")

// Fetcher obtém o arquivo database de uma URL http(s) ou de um caminho local.
type Fetcher struct {
	client *http.Client
}

// NewFetcher cria um Fetcher. Um client nil usa http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

// IsRemote indica se a localização deve ser baixada via HTTP.
func IsRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Fetch abre a localização. Quem chama deve fechar o ReadCloser retornado.
func (f *Fetcher) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: nenhuma fonte configurada", ErrFetchFailed)
	}
	if !IsRemote(location) {
		file, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		return file, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, resp.Status)
	}
	return resp.Body, nil
}
