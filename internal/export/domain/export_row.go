package domain

import (
	"strconv"
	"time"
)

// EnrichedOrderRow ligne d'export d'une commande enrichie, jointe au
// profit simulé quand la simulation a tourné.
type EnrichedOrderRow struct {
	OrderID         int64
	OrderedAt       time.Time
	OrderValue      float64
	PaymentMethod   string
	DiscountKind    string
	DiscountAmount  float64
	TotalCosts      float64
	Revenue         float64
	Profit          float64
	CommissionPct   *float64
	DiscountPct     *float64
	SimulatedProfit *float64
}

// ToCSVRow convertit en tableau pour CSV. strconv plutôt que
// fmt.Sprintf: appelé une fois par ligne exportée.
func (r *EnrichedOrderRow) ToCSVRow() []string {
	return []string{
		strconv.FormatInt(r.OrderID, 10),
		r.OrderedAt.Format("2006-01-02 15:04:05"),
		strconv.FormatFloat(r.OrderValue, 'f', 2, 64),
		r.PaymentMethod,
		r.DiscountKind,
		strconv.FormatFloat(r.DiscountAmount, 'f', 2, 64),
		strconv.FormatFloat(r.TotalCosts, 'f', 2, 64),
		strconv.FormatFloat(r.Revenue, 'f', 2, 64),
		strconv.FormatFloat(r.Profit, 'f', 2, 64),
		formatOptional(r.CommissionPct),
		formatOptional(r.DiscountPct),
		formatOptional(r.SimulatedProfit),
	}
}

// CSVHeaders retourne les en-têtes CSV des commandes enrichies
func CSVHeaders() []string {
	return []string{
		"order_id",
		"order_date",
		"order_value",
		"payment_method",
		"discount_kind",
		"discount_amount",
		"total_costs",
		"revenue",
		"profit",
		"commission_pct",
		"discount_pct",
		"simulated_profit",
	}
}

// ComparisonCSVHeaders en-têtes du rapport réel vs simulé
func ComparisonCSVHeaders() []string {
	return []string{
		"order_id",
		"order_value",
		"actual_profit",
		"simulated_profit",
		"delta",
	}
}

// formatOptional champ indéfini → cellule vide, jamais un zéro qui se
// confondrait avec une valeur calculée.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
