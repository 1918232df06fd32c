package domain

import (
	"errors"

	shareddomain "profitsim/internal/shared/domain"
)

// Taux par défaut du scénario étudié: commission plateforme à 27% de
// la valeur de commande, remise plafonnée à 6%.
const (
	DefaultCommissionRate = 27.0
	DefaultDiscountRate   = 6.0
)

// PolicyParams paramètres globaux d'une simulation: taux de commission
// et taux de remise, en pourcentage de la valeur de commande. Value
// Object validé à la construction, passé explicitement au simulateur
// plutôt que lu d'un état ambiant.
type PolicyParams struct {
	commissionRate float64
	discountRate   float64
}

// NewPolicyParams crée des paramètres de simulation avec validation
func NewPolicyParams(commissionRate, discountRate float64) (PolicyParams, error) {
	if commissionRate < 0 || commissionRate > 100 {
		return PolicyParams{}, errors.New("commission rate must be between 0 and 100")
	}
	if discountRate < 0 || discountRate > 100 {
		return PolicyParams{}, errors.New("discount rate must be between 0 and 100")
	}
	return PolicyParams{
		commissionRate: commissionRate,
		discountRate:   discountRate,
	}, nil
}

// DefaultPolicyParams retourne les taux par défaut (27% / 6%)
func DefaultPolicyParams() PolicyParams {
	return PolicyParams{
		commissionRate: DefaultCommissionRate,
		discountRate:   DefaultDiscountRate,
	}
}

// CommissionRate retourne le taux de commission simulé
func (p PolicyParams) CommissionRate() float64 {
	return p.commissionRate
}

// DiscountRate retourne le taux de remise simulé
func (p PolicyParams) DiscountRate() float64 {
	return p.discountRate
}

// SimulatedOutcome résultat financier d'une commande sous les taux
// simulés
type SimulatedOutcome struct {
	CommissionFee  float64
	DiscountAmount float64
	TotalCosts     float64
	Profit         float64
}

// Simulate recalcule les métriques d'une commande en substituant les
// taux globaux aux valeurs réelles: même formule que la dérivation
// réelle, commission et remise remplacées par valeur×taux/100. Les
// frais manquants sont coercés à zéro par l'appelant.
func (p PolicyParams) Simulate(orderValue, deliveryFee, processingFee float64) SimulatedOutcome {
	commission := shareddomain.Round2(orderValue * p.commissionRate / 100)
	discount := shareddomain.Round2(orderValue * p.discountRate / 100)
	totalCosts := shareddomain.Round2(deliveryFee + processingFee + discount)

	return SimulatedOutcome{
		CommissionFee:  commission,
		DiscountAmount: discount,
		TotalCosts:     totalCosts,
		Profit:         shareddomain.Round2(commission - totalCosts),
	}
}
