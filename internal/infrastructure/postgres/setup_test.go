package postgres

// Repository tests run against a throwaway postgres container and are
// skipped under -short.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("recipes_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starting postgres container: %v\n", err)
		os.Exit(1)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err == nil {
		testPool, err = pgxpool.New(ctx, dsn)
	}
	if err == nil {
		err = applyMigrations(ctx, testPool)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "preparing test database: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir := filepath.Join("..", "..", "..", "db", "migrations")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("applying %s: %w", name, err)
		}
	}
	return nil
}

// requirePool skips the test when no container was started (-short).
func requirePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("skipping database test in short mode")
	}
	t.Cleanup(func() {
		_, err := testPool.Exec(context.Background(),
			`TRUNCATE users, tags, ingredients, recipes RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})
	return testPool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Name: "Test Cook", Password: "hashed-password", IsActive: true}
	require.NoError(t, NewUserRepository(pool).Create(context.Background(), u))
	return u
}

func seedAttribute(t *testing.T, r *AttributeRepository, userID int64, name string) int64 {
	t.Helper()
	a := &entity.Attribute{Name: name, UserID: userID}
	require.NoError(t, r.Create(context.Background(), a))
	return a.ID
}

func seedRecipe(t *testing.T, pool *pgxpool.Pool, userID int64, title string, tagIDs, ingredientIDs []int64) *entity.Recipe {
	t.Helper()
	price, err := entity.ParsePrice("5.50")
	require.NoError(t, err)
	r := &entity.Recipe{Title: title, Price: price, TimeMinutes: 10, UserID: userID}
	require.NoError(t, NewRecipeRepository(pool).Create(context.Background(), r, tagIDs, ingredientIDs))
	return r
}
