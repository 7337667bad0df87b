package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("STATS_TIMEOUT_SECONDS", "")

	cfg := Load()

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "ewm.hits", cfg.KafkaHitsTopic)
	require.Nil(t, cfg.KafkaBrokers)
	require.Equal(t, 5*time.Second, cfg.StatsTimeout)
}

func TestLoadKafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092")

	cfg := Load()

	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "ewm", DBPassword: "secret", DBName: "ewm"}

	require.Equal(t, "host=db user=ewm password=secret dbname=ewm port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger("verbose")

	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(0))
	require.False(t, logger.Core().Enabled(-1))
}

func TestForStatsSwapsPortDatabaseAndName(t *testing.T) {
	t.Setenv("STATS_APP_NAME", "")
	cfg := &Config{AppName: "ewm-main-service", Port: "8080", DBName: "ewm", StatsPort: "9090", StatsDBName: "ewm_stats", DBHost: "db"}

	stats := cfg.ForStats()

	require.Equal(t, "ewm-stats-service", stats.AppName)
	require.Equal(t, "9090", stats.Port)
	require.Equal(t, "ewm_stats", stats.DBName)
	require.Equal(t, "db", stats.DBHost)
	require.Equal(t, "8080", cfg.Port)
}
