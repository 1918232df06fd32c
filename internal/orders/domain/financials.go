package domain

import (
	shareddomain "profitsim/internal/shared/domain"
)

// Financials métriques financières dérivées d'une commande
type Financials struct {
	TotalCosts    float64
	Revenue       float64
	Profit        float64
	CommissionPct *float64
	DiscountPct   *float64
}

// ComputeFinancials fonction pure par ligne: coûts totaux, revenu et
// profit à partir des frais et du montant de remise. Les frais NULL
// sont coercés à zéro avant sommation; le profit est arrondi à 2
// décimales. Les pourcentages sont nil quand la valeur de commande est
// nulle ou manquante (pourcentage indéfini, pas une erreur).
func ComputeFinancials(orderValue, commissionFee, deliveryFee, processingFee *float64, discountAmount float64) Financials {
	totalCosts := shareddomain.OrZero(deliveryFee) +
		shareddomain.OrZero(processingFee) +
		discountAmount

	// Le revenu de la plateforme sur une commande est sa commission.
	revenue := shareddomain.OrZero(commissionFee)

	ov := shareddomain.OrZero(orderValue)

	return Financials{
		TotalCosts:    totalCosts,
		Revenue:       revenue,
		Profit:        shareddomain.Round2(revenue - totalCosts),
		CommissionPct: shareddomain.PercentOf(revenue, ov),
		DiscountPct:   shareddomain.PercentOf(discountAmount, ov),
	}
}
