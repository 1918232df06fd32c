package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"profitsim/database"
	analyticsinfra "profitsim/internal/analytics/infrastructure"
	exportinfra "profitsim/internal/export/infrastructure"
	ordersinfra "profitsim/internal/orders/infrastructure"
	sharedinfra "profitsim/internal/shared/infrastructure"
	simulationinfra "profitsim/internal/simulation/infrastructure"
)

// TestContext contient toutes les dépendances pour les tests
// d'intégration. Ne contient pas les services: les tests les créent
// eux-mêmes pour éviter les import cycles.
type TestContext struct {
	DB *sql.DB

	// Repositories
	OrderRepo      *ordersinfra.OrderRepository
	ReportRepo     *analyticsinfra.ReportQueryRepository
	SimulationRepo *simulationinfra.SimulationRepository
	ExportRepo     *exportinfra.ExportQueryRepository

	// Infrastructure
	Cache sharedinfra.Cache
	UoW   sharedinfra.UnitOfWork
}

// SetupTestDB initialise la base de test. Par défaut: fichier SQLite
// sous t.TempDir(), aucun service externe requis. TEST_DB_DRIVER=postgres
// bascule sur la configuration PostgreSQL des variables d'environnement.
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	_ = godotenv.Load("../../../.env")

	driver := getEnv("TEST_DB_DRIVER", database.DriverSQLite)

	var dsn string
	if driver == database.DriverPostgres {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "profitsim"),
			getEnv("DB_PASSWORD", "profitsim"),
			getEnv("DB_NAME", "profitsim_test"),
			getEnv("DB_SSLMODE", "disable"),
		)
	} else {
		dsn = filepath.Join(tb.TempDir(), "profitsim_test.db")
	}

	if err := database.Init(driver, dsn); err != nil {
		tb.Fatalf("Failed to open test database (%s): %v", driver, err)
	}
	if err := database.EnsureSchema(); err != nil {
		tb.Fatalf("Failed to create schema: %v", err)
	}

	tb.Cleanup(func() {
		_ = database.Close()
	})

	return database.DB
}

// SetupTestContext initialise un contexte de test avec DB, repositories
// et infrastructure partagée.
func SetupTestContext(tb testing.TB) *TestContext {
	tb.Helper()

	ctx := &TestContext{}
	ctx.DB = SetupTestDB(tb)

	ctx.Cache = sharedinfra.NewShardedCache(16)
	tb.Cleanup(ctx.Cache.Stop)
	ctx.UoW = sharedinfra.NewUnitOfWork(ctx.DB)

	ctx.OrderRepo = ordersinfra.NewOrderRepository(ctx.DB)
	ctx.ReportRepo = analyticsinfra.NewReportQueryRepository(ctx.DB)
	ctx.SimulationRepo = simulationinfra.NewSimulationRepository(ctx.DB)
	ctx.ExportRepo = exportinfra.NewExportQueryRepository(ctx.DB)

	return ctx
}

// FixtureOrder une commande de test insérée telle quelle
type FixtureOrder struct {
	ID            int64
	OrderValue    *float64
	CommissionFee *float64
	DeliveryFee   *float64
	ProcessingFee *float64
	Descriptor    string
	PaymentMethod string
}

func fptr(v float64) *float64 { return &v }

// FixtureOrders jeu de données canonique des tests d'intégration.
// La commande 1 est l'exemple de référence de la documentation:
// valeur 200, commission 50, livraison 10, traitement 5, "10% off".
func FixtureOrders() []FixtureOrder {
	return []FixtureOrder{
		{1, fptr(200), fptr(50), fptr(10), fptr(5), "10% off", "Credit Card"},
		{2, fptr(500), fptr(100), fptr(20), fptr(10), "50 off Promo", "Cash on Delivery"},
		{3, fptr(300), fptr(30), fptr(25), fptr(15), "None", "Digital Wallet"},
		{4, nil, fptr(40), fptr(10), fptr(5), "5% on App", "Credit Card"},
		{5, fptr(150), nil, nil, fptr(5), "", "Cash on Delivery"},
	}
}

// InsertFixtureOrders insère le jeu de données canonique, horodaté sur
// les 5 derniers jours pour rester dans les fenêtres d'export.
func InsertFixtureOrders(tb testing.TB, db *sql.DB) int {
	tb.Helper()

	now := time.Now()
	fixtures := FixtureOrders()
	for i, f := range fixtures {
		query := `
			INSERT INTO food_orders (
				order_id, order_value, commission_fee, delivery_fee,
				payment_processing_fee, order_ts, discount_descriptor, payment_method
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		q, args := database.Rebind(query,
			f.ID, f.OrderValue, f.CommissionFee, f.DeliveryFee,
			f.ProcessingFee, now.AddDate(0, 0, -i), f.Descriptor, f.PaymentMethod,
		)
		if _, err := db.Exec(q, args...); err != nil {
			tb.Fatalf("Failed to insert fixture order %d: %v", f.ID, err)
		}
	}
	return len(fixtures)
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
