package infrastructure

import (
	"database/sql"

	"profitsim/database"
	"profitsim/internal/orders/domain"
	"profitsim/internal/shared/infrastructure"
)

// OrderRepository accès à la table food_orders: chargement complet pour
// l'enrichissement et écriture des colonnes dérivées.
type OrderRepository struct {
	infrastructure.BaseRepository
}

// NewOrderRepository crée un nouveau repository de commandes
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// WithTx retourne une copie du repository liée à la transaction
func (r *OrderRepository) WithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{BaseRepository: r.BaseRepository.WithTx(tx)}
}

// LoadAll charge toutes les commandes avec les colonnes nécessaires à
// l'enrichissement. Le pipeline est un traitement par lots sur table
// statique: un scan complet est le mode d'accès attendu.
func (r *OrderRepository) LoadAll() ([]*domain.Order, error) {
	query := `
		SELECT order_id, order_value, commission_fee, delivery_fee,
		       payment_processing_fee,
		       COALESCE(discount_descriptor, '') AS discount_descriptor,
		       COALESCE(payment_method, '') AS payment_method
		FROM food_orders
		ORDER BY order_id
	`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o := &domain.Order{}
		if err := rows.Scan(
			&o.ID, &o.OrderValue, &o.CommissionFee, &o.DeliveryFee,
			&o.ProcessingFee, &o.DiscountDescriptor, &o.PaymentMethod,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// UpdateDerived écrit les colonnes dérivées d'une commande enrichie.
func (r *OrderRepository) UpdateDerived(o *domain.Order) error {
	query := `
		UPDATE food_orders SET
			discount_kind = $1,
			discount_value = $2,
			discount_amount = $3,
			total_costs = $4,
			revenue = $5,
			profit = $6,
			commission_pct = $7,
			discount_pct = $8
		WHERE order_id = $9
	`

	q, args := database.Rebind(query,
		string(o.Discount.Kind), o.Discount.Value, o.DiscountAmount,
		o.TotalCosts, o.Revenue, o.Profit,
		o.CommissionPct, o.DiscountPct, int64(o.ID),
	)
	_, err := r.Exec(q, args...)
	return err
}

// Count retourne le nombre de commandes de la table source.
func (r *OrderRepository) Count() (int, error) {
	var count int
	err := r.QueryRow(`SELECT COUNT(*) FROM food_orders`).Scan(&count)
	return count, err
}
