package workbook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/database.xlsx" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("conteudo"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())

	body, err := f.Fetch(context.Background(), srv.URL+"/database.xlsx")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	body.Close()
	require.NoError(t, err)
	assert.Equal(t, "conteudo", string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.xlsx")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetch_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(nil).Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetch_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o600))

	f := NewFetcher(nil)
	body, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	data, _ := io.ReadAll(body)
	body.Close()
	assert.Equal(t, "local", string(data))

	_, err = f.Fetch(context.Background(), filepath.Join(dir, "nope.xlsx"))
	assert.ErrorIs(t, err, ErrFetchFailed)

	_, err = f.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/database.xlsx"))
	assert.True(t, IsRemote("HTTP://host/x.xls"))
	assert.False(t, IsRemote("./database.xlsx"))
}
