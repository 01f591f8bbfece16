package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylepratt/flipledger/backend-go/internal/config"
)

func TestBuildRedisOptionsFromURL(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{RedisURL: "redis://:sekret@redis.internal:6380/3"})

	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6380", opts.Addr)
	assert.Equal(t, "sekret", opts.Password)
	assert.Equal(t, 3, opts.DB)
}

func TestBuildRedisOptionsHostPortDefaults(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)

	opts, err = buildRedisOptions(config.CacheConfig{
		RedisHost:     "cache.internal",
		RedisPort:     "6400",
		RedisPassword: "pw",
		RedisDB:       2,
	})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6400", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestBuildRedisOptionsRejectsBadURL(t *testing.T) {
	_, err := buildRedisOptions(config.CacheConfig{RedisURL: "memcached://wrong"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}
