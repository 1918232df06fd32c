package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"profitsim/database"
	analyticsapp "profitsim/internal/analytics/application"
	analyticsdomain "profitsim/internal/analytics/domain"
	analyticsinfra "profitsim/internal/analytics/infrastructure"
	exportapp "profitsim/internal/export/application"
	exportinfra "profitsim/internal/export/infrastructure"
	ordersapp "profitsim/internal/orders/application"
	ordersinfra "profitsim/internal/orders/infrastructure"
	sharedinfra "profitsim/internal/shared/infrastructure"
	simulationapp "profitsim/internal/simulation/application"
	simulationdomain "profitsim/internal/simulation/domain"
	simulationinfra "profitsim/internal/simulation/infrastructure"
)

// Pipeline d'analyse de rentabilité: audit des valeurs manquantes,
// enrichissement financier, rapports agrégés, simulation de politique
// tarifaire, comparaison réel vs simulé, exports CSV et Parquet.
func main() {
	_ = godotenv.Load()

	driver := getEnv("DB_DRIVER", database.DriverPostgres)
	dsn := buildDSN(driver)

	if err := database.Init(driver, dsn); err != nil {
		log.Fatalf("❌ Connexion base de données (%s): %v", driver, err)
	}
	defer database.Close()

	if err := database.EnsureSchema(); err != nil {
		log.Fatalf("❌ Création du schéma: %v", err)
	}

	fmt.Printf("🚀 Pipeline de rentabilité (driver: %s)\n\n", driver)

	db := database.DB
	cache := sharedinfra.NewShardedCache(16)
	defer cache.Stop()
	uow := sharedinfra.NewUnitOfWork(db)

	orderRepo := ordersinfra.NewOrderRepository(db)
	reportRepo := analyticsinfra.NewReportQueryRepository(db)
	simulationRepo := simulationinfra.NewSimulationRepository(db)
	exportRepo := exportinfra.NewExportQueryRepository(db)

	enrichment := ordersapp.NewEnrichmentService(orderRepo, uow)
	reports := analyticsapp.NewReportService(reportRepo, cache)
	simulation := simulationapp.NewSimulationService(simulationRepo, uow)
	exports := exportapp.NewExportService(exportRepo)

	// 1. Audit des valeurs manquantes, sur les données brutes.
	audit, err := reports.NullAudit()
	if err != nil {
		log.Fatalf("❌ Audit des valeurs manquantes: %v", err)
	}
	fmt.Printf("🔍 Audit: %d commandes\n", audit.TotalRows)
	for _, col := range audit.Columns {
		fmt.Printf("   %-24s %d NULL\n", col.Column, col.Nulls)
	}
	fmt.Println()

	// 2. Enrichissement: remises, coûts, profits, pourcentages.
	processed, err := enrichment.EnrichAll()
	if err != nil {
		log.Fatalf("❌ Enrichissement: %v", err)
	}
	fmt.Printf("💰 Enrichissement: %d commandes dérivées\n\n", processed)

	// 3. Rapports agrégés.
	report, err := reports.ProfitabilityReport()
	if err != nil {
		log.Fatalf("❌ Rapport de rentabilité: %v", err)
	}
	printReport(report)

	// 4. Simulation de politique tarifaire.
	params, err := simulationdomain.NewPolicyParams(
		getEnvFloat("SIM_COMMISSION_RATE", simulationdomain.DefaultCommissionRate),
		getEnvFloat("SIM_DISCOUNT_RATE", simulationdomain.DefaultDiscountRate),
	)
	if err != nil {
		log.Fatalf("❌ Paramètres de simulation: %v", err)
	}
	written, err := simulation.Run(params)
	if err != nil {
		log.Fatalf("❌ Simulation: %v", err)
	}
	reports.InvalidateCache()
	fmt.Printf("🧪 Simulation (%.0f%% commission, %.0f%% remise): %d lignes\n\n",
		params.CommissionRate(), params.DiscountRate(), written)

	// 5. Comparaison réel vs simulé (aperçu des premières commandes).
	comparison, err := reports.CompareActualVsSimulated(10)
	if err != nil {
		log.Fatalf("❌ Comparaison réel vs simulé: %v", err)
	}
	fmt.Println("📊 Réel vs simulé (10 premières commandes):")
	for _, row := range comparison {
		fmt.Printf("   #%d  réel %.2f  simulé %.2f  delta %+.2f\n",
			row.OrderID, row.ActualProfit, row.SimulatedProfit, row.Delta)
	}
	fmt.Println()

	// 6. Exports.
	outDir := getEnv("OUT_DIR", ".")
	days := getEnvInt("EXPORT_DAYS", 365)

	csvData, err := exports.ExportOrdersCSV(days)
	if err != nil {
		log.Fatalf("❌ Export CSV: %v", err)
	}
	csvPath := filepath.Join(outDir, "enriched_orders.csv")
	if err := os.WriteFile(csvPath, csvData, 0o644); err != nil {
		log.Fatalf("❌ Écriture %s: %v", csvPath, err)
	}
	fmt.Printf("📄 Export CSV: %s (%d octets)\n", csvPath, len(csvData))

	parquetPath := filepath.Join(outDir, "enriched_orders.parquet")
	if err := exports.ExportOrdersParquet(days, parquetPath); err != nil {
		log.Fatalf("❌ Export Parquet: %v", err)
	}
	fmt.Printf("📦 Export Parquet: %s\n", parquetPath)

	fullComparison, err := reports.CompareActualVsSimulated(0)
	if err != nil {
		log.Fatalf("❌ Comparaison complète: %v", err)
	}
	comparisonData, err := exports.ExportComparisonCSV(fullComparison)
	if err != nil {
		log.Fatalf("❌ Export comparaison: %v", err)
	}
	comparisonPath := filepath.Join(outDir, "actual_vs_simulated.csv")
	if err := os.WriteFile(comparisonPath, comparisonData, 0o644); err != nil {
		log.Fatalf("❌ Écriture %s: %v", comparisonPath, err)
	}
	fmt.Printf("📄 Export comparaison: %s (%d lignes)\n", comparisonPath, len(fullComparison))

	fmt.Println("\n✅ Pipeline terminé")
}

func printReport(report *analyticsdomain.ProfitabilityReport) {
	fmt.Println("📈 Profits par jour de la semaine:")
	for _, wp := range report.WeekdayProfits {
		fmt.Printf("   %-9s %5d commandes  profit total %.2f\n",
			wp.Weekday, wp.Orders, wp.TotalProfit)
	}

	fmt.Println("💳 Moyens de paiement:")
	for _, u := range report.PaymentUsage {
		fmt.Printf("   %-18s %5d commandes  valeur totale %.2f\n",
			u.Method, u.Orders, u.TotalOrderValue)
	}

	fmt.Println("👥 Cohortes par signe du profit:")
	printCohort(report.Profitable)
	printCohort(report.Unprofitable)
	fmt.Println()
}

func printCohort(c analyticsdomain.CohortStats) {
	fmt.Printf("   %-13s %5d commandes  commission %s  remise %s\n",
		c.Label, c.Orders, formatPct(c.AvgCommissionPct), formatPct(c.AvgDiscountPct))
}

// formatPct moyenne indéfinie (cohorte vide ou valeurs de commande
// toutes nulles) affichée "n/a" plutôt que 0.
func formatPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *v)
}

func buildDSN(driver string) string {
	if driver == database.DriverSQLite {
		return getEnv("DB_PATH", "profitsim.db")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "profitsim"),
		getEnv("DB_PASSWORD", "profitsim"),
		getEnv("DB_NAME", "profitsim"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
