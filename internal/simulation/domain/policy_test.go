package domain

import "testing"

func TestNewPolicyParams(t *testing.T) {
	tests := []struct {
		name       string
		commission float64
		discount   float64
		wantErr    bool
	}{
		{"taux valides", 27, 6, false},
		{"bornes", 0, 100, false},
		{"commission négative", -1, 6, true},
		{"commission > 100", 101, 6, true},
		{"remise négative", 27, -0.5, true},
		{"remise > 100", 27, 100.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicyParams(tt.commission, tt.discount)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPolicyParams(%v, %v) error = %v, wantErr %v",
					tt.commission, tt.discount, err, tt.wantErr)
			}
		})
	}
}

func TestPolicyParams_Simulate(t *testing.T) {
	params := DefaultPolicyParams()

	// Exemple de référence: commande 200, livraison 10, traitement 5,
	// taux 27% / 6%.
	got := params.Simulate(200, 10, 5)

	if got.CommissionFee != 54 {
		t.Errorf("CommissionFee = %v, want 54", got.CommissionFee)
	}
	if got.DiscountAmount != 12 {
		t.Errorf("DiscountAmount = %v, want 12", got.DiscountAmount)
	}
	if got.TotalCosts != 27 {
		t.Errorf("TotalCosts = %v, want 27", got.TotalCosts)
	}
	if got.Profit != 27 {
		t.Errorf("Profit = %v, want 27", got.Profit)
	}
}

func TestPolicyParams_Simulate_ZeroOrderValue(t *testing.T) {
	params := DefaultPolicyParams()
	got := params.Simulate(0, 10, 5)

	if got.CommissionFee != 0 || got.DiscountAmount != 0 {
		t.Errorf("expected zero commission and discount, got %+v", got)
	}
	if got.Profit != -15 {
		t.Errorf("Profit = %v, want -15 (fixed fees only)", got.Profit)
	}
}
