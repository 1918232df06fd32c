package infrastructure

import (
	"database/sql"

	"profitsim/database"
	"profitsim/internal/export/domain"
	shareddomain "profitsim/internal/shared/domain"
	"profitsim/internal/shared/infrastructure"
)

// ExportQueryRepository requêtes de lecture pour les exports
type ExportQueryRepository struct {
	infrastructure.BaseRepository
}

// NewExportQueryRepository crée un nouveau repository d'export
func NewExportQueryRepository(db *sql.DB) *ExportQueryRepository {
	return &ExportQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// GetEnrichedOrders récupère les commandes enrichies de la période en
// une seule requête, jointes au profit simulé (LEFT JOIN: l'export
// reste possible avant la simulation).
func (r *ExportQueryRepository) GetEnrichedOrders(dateRange shareddomain.DateRange) ([]*domain.EnrichedOrderRow, error) {
	query := `
		SELECT o.order_id,
		       o.order_ts,
		       COALESCE(o.order_value, 0),
		       COALESCE(o.payment_method, ''),
		       COALESCE(o.discount_kind, 'none'),
		       COALESCE(o.discount_amount, 0),
		       COALESCE(o.total_costs, 0),
		       COALESCE(o.revenue, 0),
		       COALESCE(o.profit, 0),
		       o.commission_pct,
		       o.discount_pct,
		       s.simulated_profit
		FROM food_orders o
		LEFT JOIN food_orders_simulation s ON o.order_id = s.order_id
		WHERE o.order_ts >= $1 AND o.order_ts <= $2
		ORDER BY o.order_ts DESC, o.order_id
	`

	q, args := database.Rebind(query, dateRange.Start(), dateRange.End())
	rows, err := r.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.EnrichedOrderRow
	for rows.Next() {
		row := &domain.EnrichedOrderRow{}
		if err := rows.Scan(
			&row.OrderID, &row.OrderedAt, &row.OrderValue,
			&row.PaymentMethod, &row.DiscountKind, &row.DiscountAmount,
			&row.TotalCosts, &row.Revenue, &row.Profit,
			&row.CommissionPct, &row.DiscountPct, &row.SimulatedProfit,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
