//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// exerciseTrackedBackend runs a tracked batch against a live server and checks the history commands.
func exerciseTrackedBackend(t *testing.T, backend, connStr string) {
	t.Helper()
	t.Setenv("SOLARSITE_ANALYSIS_BACKEND", backend)
	t.Setenv("SOLARSITE_ANALYSIS_DB_CONNECT", connStr)

	_, _, err := runSolarsite(t, "analysis", "clear")
	require.NoError(t, err)

	_, _, err = runSolarsite(t, "analysis", "migrate")
	require.NoError(t, err)

	pattern := filepath.Join(filepath.Dir(fixture(t, "good.json")), "*")
	_, _, err = runSolarsite(t, "batch", pattern, "--limit", "5")
	require.NoError(t, err)

	_, _, err = runSolarsite(t, "score", fixture(t, "good.json"))
	require.NoError(t, err)

	stdout, _, err := runSolarsite(t, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Connected: true")
	assert.Contains(t, stdout, "Total Runs: 2")

	prefix := filepath.Join(t.TempDir(), "export")
	_, _, err = runSolarsite(t, "analysis", "export", "--output-file", prefix)
	require.NoError(t, err)
	assert.FileExists(t, prefix+".criterion_scores.parquet")

	_, _, err = runSolarsite(t, "analysis", "clear")
	require.NoError(t, err)
}

// TestSolarsiteWithMySQL tests the solarsite CLI with a MySQL backend.
func TestSolarsiteWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "solarsite",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/solarsite?parseTime=true", host, port.Port())
	exerciseTrackedBackend(t, "mysql", connStr)
}

// TestSolarsiteWithPostgres tests the solarsite CLI with a PostgreSQL backend.
func TestSolarsiteWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseTrackedBackend(t, "postgresql", connStr)
}
