package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"profitsim/database"
)

// Génère un jeu de commandes réaliste pour exercer le pipeline:
// montants parfois NULL, descripteurs de remise en texte libre.
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

	count := getEnvInt("SEED_ORDERS", 10000)
	if err := database.SeedOrders(count); err != nil {
		log.Fatalf("❌ Seed: %v", err)
	}
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
