package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestConnectionConfig_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   ConnectionConfig
		want ConnectionConfig
	}{
		{
			name: "zero value uses defaults",
			in:   ConnectionConfig{},
			want: DefaultConnectionConfig(),
		},
		{
			name: "negative values use defaults",
			in:   ConnectionConfig{MaxOpenConns: -1, MaxIdleConns: -5},
			want: DefaultConnectionConfig(),
		},
		{
			name: "explicit values are kept",
			in:   ConnectionConfig{MaxOpenConns: 50, MaxIdleConns: 5, ConnMaxLifetime: time.Minute, ConnMaxIdleTime: time.Second},
			want: ConnectionConfig{MaxOpenConns: 50, MaxIdleConns: 5, ConnMaxLifetime: time.Minute, ConnMaxIdleTime: time.Second},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.withDefaults())
		})
	}
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "", ConnectionConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty DSN")
}

func TestOpenMongo_EmptyURI(t *testing.T) {
	_, err := OpenMongo(context.Background(), MongoConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty URI")
}
