package database

// ============================================================================
// MODÈLES POUR EXPORT PARQUET
// ============================================================================

// EnrichedOrderParquet - Structure optimisée pour l'export Parquet des
// commandes enrichies (colonnes dérivées + profit simulé joint).
type EnrichedOrderParquet struct {
	OrderID         int64   `parquet:"name=order_id, type=INT64"`
	OrderDate       string  `parquet:"name=order_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderValue      float64 `parquet:"name=order_value, type=DOUBLE"`
	PaymentMethod   string  `parquet:"name=payment_method, type=BYTE_ARRAY, convertedtype=UTF8"`
	DiscountKind    string  `parquet:"name=discount_kind, type=BYTE_ARRAY, convertedtype=UTF8"`
	DiscountAmount  float64 `parquet:"name=discount_amount, type=DOUBLE"`
	TotalCosts      float64 `parquet:"name=total_costs, type=DOUBLE"`
	Revenue         float64 `parquet:"name=revenue, type=DOUBLE"`
	Profit          float64 `parquet:"name=profit, type=DOUBLE"`
	SimulatedProfit float64 `parquet:"name=simulated_profit, type=DOUBLE"`
}
