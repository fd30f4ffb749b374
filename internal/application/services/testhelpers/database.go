package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/config"
	"github.com/DanielPopoola/course-checkout/internal/infrastructure/persistence/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestDatabase struct {
	Container testcontainers.Container
	DB        *postgres.DB
	Config    *config.DatabaseConfig
}

func SetupTestDatabase(t *testing.T) *TestDatabase {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbConfig := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}

	db, err := postgres.Connect(ctx, dbConfig, DiscardLogger())
	require.NoError(t, err)

	err = runMigrations(ctx, db)
	require.NoError(t, err)

	return &TestDatabase{
		Container: container,
		DB:        db,
		Config:    dbConfig,
	}
}

func (td *TestDatabase) Cleanup(t *testing.T) {
	ctx := context.Background()
	td.DB.Close()
	require.NoError(t, td.Container.Terminate(ctx))
}

func (td *TestDatabase) CleanTables(t *testing.T) {
	ctx := context.Background()

	_, err := td.DB.Pool.Exec(ctx, "TRUNCATE TABLE user_entitlements, orders, course_entitlements, courses RESTART IDENTITY CASCADE;")
	require.NoError(t, err)
}

// SeedCourse inserts course and its entitlements in one transaction.
func (td *TestDatabase) SeedCourse(t *testing.T, course *CourseRow) {
	ctx := context.Background()

	err := td.DB.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO courses (course_id, course_key, title, price, currency, status, purchasable,
			                     commerce_visibility, payment_type, enabled_gateways)
			VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8, $9, $10::text::jsonb)`,
			course.CourseID, course.Key, course.Title, course.Price, course.Currency, course.Status,
			course.Purchasable, course.Visibility, course.PaymentType, course.EnabledGatewaysJSON,
		)
		if err != nil {
			return err
		}

		for _, slug := range course.Entitlements {
			_, err := tx.Exec(ctx,
				`INSERT INTO course_entitlements (course_id, entitlement_slug) VALUES ($1, $2)`,
				course.CourseID, slug,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

// CourseRow is a raw catalog row used to seed integration tests.
type CourseRow struct {
	CourseID            int64
	Key                 string
	Title               string
	Price               string
	Currency            string
	Status              string
	Purchasable         bool
	Visibility          string
	PaymentType         string
	EnabledGatewaysJSON string
	Entitlements        []string
}

func DefaultCourseRow() *CourseRow {
	return &CourseRow{
		CourseID:            7,
		Key:                 "go-fundamentals",
		Title:               "Go Fundamentals",
		Price:               "49.99",
		Currency:            "GBP",
		Status:              "active",
		Purchasable:         true,
		Visibility:          "live",
		PaymentType:         "paid",
		EnabledGatewaysJSON: `["paypal"]`,
	}
}

func getProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for range 4 {
		dir = filepath.Dir(dir)
	}
	return dir
}

func runMigrations(ctx context.Context, db *postgres.DB) error {
	root := getProjectRoot()
	migrationPath := filepath.Join(root, "db", "migrations", "001_init.up.sql")

	migrationSQL, err := os.ReadFile(migrationPath) //nolint:gosec // test helper, controlled path
	if err != nil {
		return fmt.Errorf("read migration file from %s: %w", migrationPath, err)
	}

	_, err = db.Pool.Exec(ctx, string(migrationSQL))
	if err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}

	return nil
}
