package infrastructure

import (
	"database/sql"

	"profitsim/database"
	"profitsim/internal/shared/infrastructure"
	"profitsim/internal/simulation/domain"
)

// SimulationRepository gestion de la table food_orders_simulation:
// recréation à chaque run puis peuplement ensembliste depuis la table
// source.
type SimulationRepository struct {
	infrastructure.BaseRepository
}

// NewSimulationRepository crée un nouveau repository de simulation
func NewSimulationRepository(db *sql.DB) *SimulationRepository {
	return &SimulationRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// WithTx retourne une copie du repository liée à la transaction
func (r *SimulationRepository) WithTx(tx *sql.Tx) *SimulationRepository {
	return &SimulationRepository{BaseRepository: r.BaseRepository.WithTx(tx)}
}

// Recreate supprime puis recrée la table de simulation. Les résultats
// sont écrits une fois par run et jamais mis à jour ensuite.
func (r *SimulationRepository) Recreate() error {
	if _, err := r.Exec(database.DropSimulationTable); err != nil {
		return err
	}
	_, err := r.Exec(database.CreateSimulationTable)
	return err
}

// PopulateFromOrders écrit une ligne de simulation par commande source,
// entièrement côté SQL (INSERT ... SELECT): commission et remise
// recalculées aux taux fixes, frais NULL coercés à zéro, montants
// arrondis à 2 décimales. La clé primaire sur order_id fait échouer
// l'insertion entière si un identifiant est dupliqué.
func (r *SimulationRepository) PopulateFromOrders(params domain.PolicyParams) (int, error) {
	// ROUND(double, n) n'existe pas en PostgreSQL: passage par NUMERIC,
	// accepté aussi par SQLite.
	query := `
		INSERT INTO food_orders_simulation (
			order_id, order_value, simulated_commission_fee,
			simulated_discount_amount, simulated_total_costs, simulated_profit
		)
		SELECT
			order_id,
			COALESCE(order_value, 0),
			ROUND(CAST(COALESCE(order_value, 0) * $1 / 100 AS NUMERIC), 2),
			ROUND(CAST(COALESCE(order_value, 0) * $2 / 100 AS NUMERIC), 2),
			ROUND(CAST(
				COALESCE(delivery_fee, 0) + COALESCE(payment_processing_fee, 0)
				+ COALESCE(order_value, 0) * $2 / 100
			AS NUMERIC), 2),
			ROUND(CAST(
				COALESCE(order_value, 0) * $1 / 100
				- (COALESCE(delivery_fee, 0) + COALESCE(payment_processing_fee, 0)
				   + COALESCE(order_value, 0) * $2 / 100)
			AS NUMERIC), 2)
		FROM food_orders
	`

	q, args := database.Rebind(query, params.CommissionRate(), params.DiscountRate())
	res, err := r.Exec(q, args...)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	return int(affected), err
}

// Count retourne le nombre de lignes simulées.
func (r *SimulationRepository) Count() (int, error) {
	var count int
	err := r.QueryRow(`SELECT COUNT(*) FROM food_orders_simulation`).Scan(&count)
	return count, err
}
