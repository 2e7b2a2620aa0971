package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_TrimsScheme(t *testing.T) {
	client, err := NewClient(Config{
		Endpoint:  "https://storage.example.com",
		AccessKey: "key",
		SecretKey: "secret",
		UseSSL:    true,
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	_, err := NewClient(Config{Endpoint: "not a host name"})
	assert.Error(t, err)
}
