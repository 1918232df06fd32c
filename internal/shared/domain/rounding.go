package domain

import "math"

// Round2 arrondit au centime (2 décimales), arrondi commercial.
// Tous les montants dérivés (profit, pourcentages, simulation) sont
// stockés avec cette précision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
