package domain

import "time"

// ColumnNulls nombre de valeurs manquantes pour une colonne source
type ColumnNulls struct {
	Column string
	Nulls  int
}

// NullAudit résultat de l'audit des valeurs manquantes: une entrée par
// colonne du jeu de données d'entrée, dans l'ordre du schéma.
type NullAudit struct {
	TotalRows int
	Columns   []ColumnNulls
}

// WeekdayProfit profit agrégé par jour de la semaine
type WeekdayProfit struct {
	Weekday     time.Weekday
	Orders      int
	TotalProfit float64
}

// PaymentMethodUsage répartition des commandes par moyen de paiement
type PaymentMethodUsage struct {
	Method          string
	Orders          int
	TotalOrderValue float64
}

// CohortStats moyennes d'une cohorte partitionnée par signe du profit.
// Les moyennes sont nil quand la cohorte est vide ou quand aucun
// pourcentage n'est défini (AVG sur un ensemble vide).
type CohortStats struct {
	Label            string
	Orders           int
	AvgCommissionPct *float64
	AvgDiscountPct   *float64
}

// ProfitabilityReport rapport agrégé post-enrichissement
type ProfitabilityReport struct {
	WeekdayProfits []WeekdayProfit
	PaymentUsage   []PaymentMethodUsage
	Profitable     CohortStats
	Unprofitable   CohortStats
}

// ComparisonRow ligne du rapport réel vs simulé, jointe par order_id
type ComparisonRow struct {
	OrderID         int64
	OrderValue      float64
	ActualProfit    float64
	SimulatedProfit float64
	Delta           float64
}
