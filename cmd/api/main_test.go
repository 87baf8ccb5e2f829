package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColiJD/CafeHenola-sub001/pkg/config"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

func TestRun_ErrorDeRedisSeDevuelve(t *testing.T) {
	cfg := &config.Config{
		App:   config.AppConfig{Env: "test", Name: "cafe-henola-test"},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory},
		Redis: config.RedisConfig{URL: "no-es-una-url", LockTTLSeconds: 10},
		HTTP:  config.HTTPConfig{Host: "127.0.0.1", Port: 0},
	}

	err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión a Redis")
}
