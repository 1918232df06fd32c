package application

import (
	"testing"

	"profitsim/internal/simulation/domain"
	"profitsim/internal/testhelpers"
)

func TestSimulationService_Run(t *testing.T) {
	ctx := testhelpers.SetupTestContext(t)
	inserted := testhelpers.InsertFixtureOrders(t, ctx.DB)

	service := NewSimulationService(ctx.SimulationRepo, ctx.UoW)

	written, err := service.Run(domain.DefaultPolicyParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if written != inserted {
		t.Errorf("wrote %d simulation rows, want %d", written, inserted)
	}

	// Commande de référence sous 27% / 6%: valeur 200, livraison 10,
	// traitement 5 → commission 54, remise 12, coûts 27, profit 27.
	var commission, discount, costs, profit float64
	err = ctx.DB.QueryRow(`
		SELECT simulated_commission_fee, simulated_discount_amount,
		       simulated_total_costs, simulated_profit
		FROM food_orders_simulation WHERE order_id = 1
	`).Scan(&commission, &discount, &costs, &profit)
	if err != nil {
		t.Fatalf("read simulation row: %v", err)
	}

	if commission != 54 {
		t.Errorf("simulated_commission_fee = %v, want 54", commission)
	}
	if discount != 12 {
		t.Errorf("simulated_discount_amount = %v, want 12", discount)
	}
	if costs != 27 {
		t.Errorf("simulated_total_costs = %v, want 27", costs)
	}
	if profit != 27 {
		t.Errorf("simulated_profit = %v, want 27", profit)
	}
}

func TestSimulationService_NullOrderValueCoercedToZero(t *testing.T) {
	ctx := testhelpers.SetupTestContext(t)
	testhelpers.InsertFixtureOrders(t, ctx.DB)

	service := NewSimulationService(ctx.SimulationRepo, ctx.UoW)
	if _, err := service.Run(domain.DefaultPolicyParams()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Commande 4: valeur NULL → commission et remise nulles, le profit
	// simulé se réduit aux frais négatifs (livraison 10 + traitement 5).
	var value, commission, discount, profit float64
	err := ctx.DB.QueryRow(`
		SELECT order_value, simulated_commission_fee,
		       simulated_discount_amount, simulated_profit
		FROM food_orders_simulation WHERE order_id = 4
	`).Scan(&value, &commission, &discount, &profit)
	if err != nil {
		t.Fatalf("read simulation row: %v", err)
	}

	if value != 0 || commission != 0 || discount != 0 {
		t.Errorf("got value=%v commission=%v discount=%v, want all 0", value, commission, discount)
	}
	if profit != -15 {
		t.Errorf("simulated_profit = %v, want -15", profit)
	}
}

func TestSimulationService_RerunReplacesResults(t *testing.T) {
	ctx := testhelpers.SetupTestContext(t)
	inserted := testhelpers.InsertFixtureOrders(t, ctx.DB)

	service := NewSimulationService(ctx.SimulationRepo, ctx.UoW)

	if _, err := service.Run(domain.DefaultPolicyParams()); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	params, err := domain.NewPolicyParams(30, 0)
	if err != nil {
		t.Fatal(err)
	}
	written, err := service.Run(params)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if written != inserted {
		t.Errorf("wrote %d rows on rerun, want %d", written, inserted)
	}

	count, err := ctx.SimulationRepo.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != inserted {
		t.Errorf("simulation table holds %d rows after rerun, want %d", count, inserted)
	}

	// Les taux de la seconde politique doivent être visibles: remise 0.
	var discount float64
	if err := ctx.DB.QueryRow(`
		SELECT simulated_discount_amount FROM food_orders_simulation WHERE order_id = 1
	`).Scan(&discount); err != nil {
		t.Fatal(err)
	}
	if discount != 0 {
		t.Errorf("simulated_discount_amount = %v after 0%% policy, want 0", discount)
	}
}

func TestSimulationRepository_DuplicateIDFailsStage(t *testing.T) {
	ctx := testhelpers.SetupTestContext(t)
	testhelpers.InsertFixtureOrders(t, ctx.DB)

	service := NewSimulationService(ctx.SimulationRepo, ctx.UoW)
	if _, err := service.Run(domain.DefaultPolicyParams()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Un second peuplement sans recréation viole la clé primaire: toute
	// l'insertion échoue, aucun résultat partiel.
	_, err := ctx.SimulationRepo.PopulateFromOrders(domain.DefaultPolicyParams())
	if err == nil {
		t.Fatal("expected primary key violation on duplicate populate")
	}

	count, err := ctx.SimulationRepo.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != len(testhelpers.FixtureOrders()) {
		t.Errorf("simulation table holds %d rows after failed populate, want %d",
			count, len(testhelpers.FixtureOrders()))
	}
}
