package domain

import (
	shareddomain "profitsim/internal/shared/domain"
)

// OrderID représente l'identifiant unique d'une commande
type OrderID int64

// Order représente une commande de livraison de repas telle que stockée
// dans food_orders. Les frais d'entrée sont optionnels (colonnes NULL);
// les champs dérivés sont renseignés par l'étape d'enrichissement.
type Order struct {
	ID                 OrderID
	OrderValue         *float64
	CommissionFee      *float64
	DeliveryFee        *float64
	ProcessingFee      *float64
	DiscountDescriptor string
	PaymentMethod      string

	// Colonnes dérivées
	Discount       Discount
	DiscountAmount float64
	TotalCosts     float64
	Revenue        float64
	Profit         float64
	CommissionPct  *float64
	DiscountPct    *float64
}

// Enrich calcule toutes les colonnes dérivées: remise parsée depuis le
// descripteur libre, coûts, revenu, profit et pourcentages.
func (o *Order) Enrich() {
	o.Discount = ParseDiscount(o.DiscountDescriptor)
	o.DiscountAmount = o.Discount.Amount(shareddomain.OrZero(o.OrderValue))

	fin := ComputeFinancials(
		o.OrderValue,
		o.CommissionFee,
		o.DeliveryFee,
		o.ProcessingFee,
		o.DiscountAmount,
	)
	o.TotalCosts = fin.TotalCosts
	o.Revenue = fin.Revenue
	o.Profit = fin.Profit
	o.CommissionPct = fin.CommissionPct
	o.DiscountPct = fin.DiscountPct
}
