package googlecal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/core/internal/infrastructure/config"
	"github.com/studysync/core/internal/infrastructure/logger"
)

func newExchangerFor(tokenURL string) *TokenExchanger {
	return NewTokenExchanger(config.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     tokenURL,
	}, logger.NewNop()).(*TokenExchanger)
}

func TestExchangeReturnsAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "stored-refresh-token", r.Form.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"short-lived-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	ex := newExchangerFor(srv.URL)

	token, err := ex.Exchange(context.Background(), "stored-refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "short-lived-token", token)
}

func TestExchangeProviderRejectionFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	ex := newExchangerFor(srv.URL)

	_, err := ex.Exchange(context.Background(), "revoked-token")
	assert.Error(t, err)
}

func TestExchangeEmptyRefreshTokenFails(t *testing.T) {
	ex := newExchangerFor("http://localhost:0")

	_, err := ex.Exchange(context.Background(), "")
	assert.Error(t, err)
}

func TestExchangeEmptyAccessTokenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"","token_type":"Bearer"}`))
	}))
	defer srv.Close()

	ex := newExchangerFor(srv.URL)

	_, err := ex.Exchange(context.Background(), "stored-refresh-token")
	assert.Error(t, err)
}
