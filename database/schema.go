package database

import "fmt"

// DDL portable PostgreSQL / SQLite: types génériques uniquement
// (BIGINT, DOUBLE PRECISION, TIMESTAMP, TEXT).

const createFoodOrdersTable = `
	CREATE TABLE IF NOT EXISTS food_orders (
		order_id               BIGINT PRIMARY KEY,
		order_value            DOUBLE PRECISION,
		commission_fee         DOUBLE PRECISION,
		delivery_fee           DOUBLE PRECISION,
		payment_processing_fee DOUBLE PRECISION,
		order_ts               TIMESTAMP,
		discount_descriptor    TEXT,
		payment_method         TEXT,

		discount_kind          TEXT,
		discount_value         DOUBLE PRECISION,
		discount_amount        DOUBLE PRECISION,
		total_costs            DOUBLE PRECISION,
		revenue                DOUBLE PRECISION,
		profit                 DOUBLE PRECISION,
		commission_pct         DOUBLE PRECISION,
		discount_pct           DOUBLE PRECISION
	)
`

// CreateSimulationTable DDL de la table de simulation; la clé primaire
// sur order_id garantit l'unicité des identifiants lors du peuplement
// (un doublon est une erreur fatale pour cette étape).
const CreateSimulationTable = `
	CREATE TABLE IF NOT EXISTS food_orders_simulation (
		order_id                 BIGINT PRIMARY KEY,
		order_value              DOUBLE PRECISION NOT NULL,
		simulated_commission_fee DOUBLE PRECISION NOT NULL,
		simulated_discount_amount DOUBLE PRECISION NOT NULL,
		simulated_total_costs    DOUBLE PRECISION NOT NULL,
		simulated_profit         DOUBLE PRECISION NOT NULL
	)
`

// DropSimulationTable la simulation est recréée à chaque run.
const DropSimulationTable = `DROP TABLE IF EXISTS food_orders_simulation`

// EnsureSchema crée les tables si absentes. La table de simulation est
// de toute façon recréée par son repository à chaque run; elle est
// créée ici pour que les lectures jointes restent valides avant la
// première simulation.
func EnsureSchema() error {
	if _, err := DB.Exec(createFoodOrdersTable); err != nil {
		return fmt.Errorf("create food_orders: %w", err)
	}
	if _, err := DB.Exec(CreateSimulationTable); err != nil {
		return fmt.Errorf("create food_orders_simulation: %w", err)
	}
	return nil
}
