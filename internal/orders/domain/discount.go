package domain

import (
	"regexp"
	"strconv"
	"strings"

	shareddomain "profitsim/internal/shared/domain"
)

// DiscountKind représente le type de remise extrait du descripteur
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
	DiscountNone       DiscountKind = "none"
)

// Discount résultat typé du parsing du descripteur de remise.
// Remplace la recherche de sous-chaînes implicite du workload d'origine
// par un parseur explicite qui échoue fermé vers None.
type Discount struct {
	Kind  DiscountKind
	Value float64
}

// Motif: nombre suivi d'un signe pourcent ("10% off", "5 % on App").
var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// ParseDiscount extrait (type, valeur) d'un descripteur libre.
// Règles, dans l'ordre:
//  1. le texte contient un signe '%' → remise en pourcentage, valeur =
//     nombre qui le précède;
//  2. le texte contient "off" → remise fixe, valeur = nombre avant la
//     première espace ("50 off Promo" → 50);
//  3. sinon, ou si aucun nombre exploitable → none / 0.
//
// Un descripteur malformé ne produit jamais d'erreur: le parsing échoue
// fermé vers DiscountNone.
func ParseDiscount(descriptor string) Discount {
	s := strings.TrimSpace(descriptor)
	if s == "" {
		return Discount{Kind: DiscountNone}
	}

	if m := percentPattern.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return Discount{Kind: DiscountPercentage, Value: value}
		}
		return Discount{Kind: DiscountNone}
	}

	if strings.Contains(strings.ToLower(s), "off") {
		head, _, _ := strings.Cut(s, " ")
		value, err := strconv.ParseFloat(head, 64)
		if err == nil && value >= 0 {
			return Discount{Kind: DiscountFixed, Value: value}
		}
	}

	return Discount{Kind: DiscountNone}
}

// Amount retourne le montant de la remise pour une valeur de commande
// donnée. Toujours non négatif et cohérent avec le type:
// percentage → valeur% de la commande, fixed → valeur, none → 0.
func (d Discount) Amount(orderValue float64) float64 {
	switch d.Kind {
	case DiscountPercentage:
		return shareddomain.Round2(orderValue * d.Value / 100)
	case DiscountFixed:
		return d.Value
	default:
		return 0
	}
}
