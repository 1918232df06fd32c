package infrastructure

import (
	"database/sql"
	"time"

	"profitsim/internal/analytics/domain"
	"profitsim/internal/shared/infrastructure"
)

// ReportQueryRepository requêtes de lecture des rapports agrégés.
// Les agrégations sont déléguées au moteur SQL (GROUP BY, AVG) sauf le
// regroupement calendaire, portable en Go entre les deux drivers.
type ReportQueryRepository struct {
	infrastructure.BaseRepository
}

// NewReportQueryRepository crée un nouveau repository de rapports
func NewReportQueryRepository(db *sql.DB) *ReportQueryRepository {
	return &ReportQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// NullAudit compte les valeurs manquantes par colonne d'entrée en un
// seul scan: COUNT(col) ignore les NULL, COUNT(*) non.
func (r *ReportQueryRepository) NullAudit() (*domain.NullAudit, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(order_value),
		       COUNT(commission_fee),
		       COUNT(delivery_fee),
		       COUNT(payment_processing_fee),
		       COUNT(order_ts),
		       COUNT(discount_descriptor),
		       COUNT(payment_method)
		FROM food_orders
	`

	var total int
	present := make([]int, 7)
	err := r.QueryRow(query).Scan(
		&total,
		&present[0], &present[1], &present[2], &present[3],
		&present[4], &present[5], &present[6],
	)
	if err != nil {
		return nil, err
	}

	columns := []string{
		"order_value", "commission_fee", "delivery_fee",
		"payment_processing_fee", "order_ts",
		"discount_descriptor", "payment_method",
	}

	audit := &domain.NullAudit{TotalRows: total}
	for i, col := range columns {
		audit.Columns = append(audit.Columns, domain.ColumnNulls{
			Column: col,
			Nulls:  total - present[i],
		})
	}
	return audit, nil
}

// ProfitRow paire (date de commande, profit) pour le regroupement
// calendaire côté Go.
type ProfitRow struct {
	OrderedAt time.Time
	Profit    float64
}

// ProfitRows retourne les paires (date, profit) des commandes enrichies.
// Le regroupement par jour de semaine se fait côté Go: l'extraction du
// jour diffère entre PostgreSQL et SQLite.
func (r *ReportQueryRepository) ProfitRows() ([]ProfitRow, error) {
	query := `
		SELECT order_ts, profit
		FROM food_orders
		WHERE profit IS NOT NULL AND order_ts IS NOT NULL
	`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ProfitRow
	for rows.Next() {
		var row ProfitRow
		if err := rows.Scan(&row.OrderedAt, &row.Profit); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// PaymentMethodUsage répartition des moyens de paiement (GROUP BY SQL).
func (r *ReportQueryRepository) PaymentMethodUsage() ([]domain.PaymentMethodUsage, error) {
	query := `
		SELECT COALESCE(payment_method, 'Unknown') AS method,
		       COUNT(*) AS orders,
		       COALESCE(SUM(order_value), 0) AS total_value
		FROM food_orders
		GROUP BY payment_method
		ORDER BY orders DESC, method
	`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []domain.PaymentMethodUsage
	for rows.Next() {
		var u domain.PaymentMethodUsage
		if err := rows.Scan(&u.Method, &u.Orders, &u.TotalOrderValue); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}

	return usage, rows.Err()
}

// CohortAverages moyennes des pourcentages de commission et de remise
// pour les commandes dont le profit satisfait la condition donnée.
// AVG ignore les pourcentages NULL (commandes à valeur nulle/manquante).
func (r *ReportQueryRepository) CohortAverages(label, profitCondition string) (domain.CohortStats, error) {
	// profitCondition est une constante interne ("> 1" / "< 0"),
	// jamais une entrée utilisateur.
	query := `
		SELECT COUNT(*),
		       AVG(commission_pct),
		       AVG(discount_pct)
		FROM food_orders
		WHERE profit ` + profitCondition

	stats := domain.CohortStats{Label: label}
	var avgCommission, avgDiscount sql.NullFloat64
	err := r.QueryRow(query).Scan(&stats.Orders, &avgCommission, &avgDiscount)
	if err != nil {
		return stats, err
	}

	if avgCommission.Valid {
		v := avgCommission.Float64
		stats.AvgCommissionPct = &v
	}
	if avgDiscount.Valid {
		v := avgDiscount.Float64
		stats.AvgDiscountPct = &v
	}
	return stats, nil
}

// CompareActualVsSimulated joint les profits réels et simulés par
// identifiant de commande, limité aux `limit` premières commandes
// (0 = toutes).
func (r *ReportQueryRepository) CompareActualVsSimulated(limit int) ([]domain.ComparisonRow, error) {
	query := `
		SELECT o.order_id,
		       COALESCE(o.order_value, 0),
		       COALESCE(o.profit, 0),
		       s.simulated_profit
		FROM food_orders o
		INNER JOIN food_orders_simulation s ON o.order_id = s.order_id
		ORDER BY o.order_id
	`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComparisonRow
	for rows.Next() {
		var row domain.ComparisonRow
		if err := rows.Scan(&row.OrderID, &row.OrderValue, &row.ActualProfit, &row.SimulatedProfit); err != nil {
			return nil, err
		}
		row.Delta = row.SimulatedProfit - row.ActualProfit
		result = append(result, row)
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result, rows.Err()
}

// JoinCounts cardinalités source / simulation / jointure, pour vérifier
// la complétude 1:1 de la simulation.
func (r *ReportQueryRepository) JoinCounts() (actual, simulated, joined int, err error) {
	query := `
		SELECT (SELECT COUNT(*) FROM food_orders),
		       (SELECT COUNT(*) FROM food_orders_simulation),
		       (SELECT COUNT(*)
		        FROM food_orders o
		        INNER JOIN food_orders_simulation s ON o.order_id = s.order_id)
	`
	err = r.QueryRow(query).Scan(&actual, &simulated, &joined)
	return actual, simulated, joined, err
}
