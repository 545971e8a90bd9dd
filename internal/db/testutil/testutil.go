// Package testutil starts a disposable PostgreSQL for integration tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDatabase = "videos_test"
	testUser     = "test"
	testPassword = "test"
)

// TestDatabase represents a test database instance.
type TestDatabase struct {
	Pool      *pgxpool.Pool
	Container *postgres.PostgresContainer
	ConnStr   string
}

// MigrationsPath returns the absolute path of the repository migrations directory.
func MigrationsPath() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("resolve caller path")
	}
	return filepath.Abs(filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations"))
}

// SetupTestDatabase creates a PostgreSQL container, runs migrations, and returns a connection pool.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationsPath, err := MigrationsPath()
	require.NoError(t, err)

	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		connStr,
	)
	require.NoError(t, err)

	err = m.Up()
	require.NoError(t, err)
	m.Close()

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	err = pool.Ping(ctx)
	require.NoError(t, err)

	return &TestDatabase{
		Pool:      pool,
		Container: pgContainer,
		ConnStr:   connStr,
	}
}

// Cleanup closes the pool and terminates the container.
func (td *TestDatabase) Cleanup(t *testing.T) {
	ctx := context.Background()

	if td.Pool != nil {
		td.Pool.Close()
	}

	if td.Container != nil {
		err := td.Container.Terminate(ctx)
		require.NoError(t, err)
	}
}

// TruncateVideos empties videos and history, keeping the seeded categories
// and blocked terms.
func (td *TestDatabase) TruncateVideos(t *testing.T) {
	_, err := td.Pool.Exec(context.Background(), `TRUNCATE TABLE historial, videos RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// BackdateVideo rewrites fecha_agregado so ordering tests do not depend on
// insert timing.
func (td *TestDatabase) BackdateVideo(t *testing.T, id int64, at time.Time) {
	_, err := td.Pool.Exec(context.Background(), `UPDATE videos SET fecha_agregado = $2 WHERE id = $1`, id, at)
	require.NoError(t, err)
}
