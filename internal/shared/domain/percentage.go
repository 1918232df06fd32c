package domain

// PercentOf calcule numerator × 100 / base, arrondi à 2 décimales.
// Retourne nil quand la base est nulle ou manquante: le pourcentage
// est indéfini, jamais une erreur de division.
func PercentOf(numerator, base float64) *float64 {
	if base == 0 {
		return nil
	}
	v := Round2(numerator * 100 / base)
	return &v
}

// OrZero coerce un montant optionnel (colonne NULL) vers zéro pour
// les sommations financières.
func OrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
