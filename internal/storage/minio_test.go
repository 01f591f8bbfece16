package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMinioClientValidation(t *testing.T) {
	_, err := NewMinioClient(MinioConfig{})
	assert.ErrorContains(t, err, "endpoint")

	_, err = NewMinioClient(MinioConfig{Endpoint: "localhost:9000", AccessKey: "ak"})
	assert.ErrorContains(t, err, "credentials")

	_, err = NewMinioClient(MinioConfig{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk"})
	assert.ErrorContains(t, err, "bucket")
}

func TestNewMinioClient(t *testing.T) {
	client, err := NewMinioClient(MinioConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "flipledger-exports",
	})

	require.NoError(t, err)
	assert.Equal(t, "flipledger-exports", client.bucket)
}
