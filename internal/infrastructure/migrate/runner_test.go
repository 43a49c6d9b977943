package migrate_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/infrastructure/migrate"
)

const migrationCount = 4

func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("migratedb"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestRunner(t *testing.T) {
	dsn := startPostgres(t)
	runner := migrate.NewRunner(&migrate.Config{
		DatabaseURL:    dsn,
		MigrationsPath: "../../../migrations",
	}, zap.NewNop())

	version, dirty, err := runner.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, runner.Up())
	version, dirty, err = runner.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(migrationCount), version)
	assert.False(t, dirty)

	t.Run("up is idempotent", func(t *testing.T) {
		require.NoError(t, runner.Up())
	})

	t.Run("schema is usable", func(t *testing.T) {
		db, err := sqlx.Connect("postgres", dsn)
		require.NoError(t, err)
		defer db.Close()

		var count int
		require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM sms_opt_outs`))
		assert.Zero(t, count)
	})

	t.Run("steps back and forward", func(t *testing.T) {
		require.NoError(t, runner.Steps(-1))
		version, _, err := runner.Version()
		require.NoError(t, err)
		assert.Equal(t, uint(migrationCount-1), version)

		require.NoError(t, runner.Steps(1))
		version, _, err = runner.Version()
		require.NoError(t, err)
		assert.Equal(t, uint(migrationCount), version)
	})

	t.Run("rollback all", func(t *testing.T) {
		require.NoError(t, runner.Steps(-migrationCount))
		version, dirty, err := runner.Version()
		require.NoError(t, err)
		assert.Zero(t, version)
		assert.False(t, dirty)
	})
}

func TestRunner_BadSource(t *testing.T) {
	dsn := startPostgres(t)
	runner := migrate.NewRunner(&migrate.Config{
		DatabaseURL:    dsn,
		MigrationsPath: "./does-not-exist",
	}, zap.NewNop())

	err := runner.Up()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create migrate instance")
}
