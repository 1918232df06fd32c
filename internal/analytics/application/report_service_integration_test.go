package application

import (
	"testing"

	ordersapp "profitsim/internal/orders/application"
	simulationapp "profitsim/internal/simulation/application"
	simulationdomain "profitsim/internal/simulation/domain"
	"profitsim/internal/testhelpers"
)

func TestReportService_NullAudit(t *testing.T) {
	ctx := testhelpers.SetupTestContext(t)
	testhelpers.InsertFixtureOrders(t, ctx.DB)

	service := NewReportService(ctx.ReportRepo, ctx.Cache)

	audit, err := service.NullAudit()
	if err != nil {
		t.Fatalf("NullAudit: %v", err)
	}

	if audit.TotalRows != len(testhelpers.FixtureOrders()) {
		t.Errorf("TotalRows = %d, want %d", audit.TotalRows, len(testhelpers.FixtureOrders()))
	}

	// Une chaîne vide n'est pas NULL: seuls les champs réellement
	// absents du jeu de données comptent.
	want := map[string]int{
		"order_value":            1,
		"commission_fee":         1,
		"delivery_fee":           1,
		"payment_processing_fee": 0,
		"order_ts":               0,
		"discount_descriptor":    0,
		"payment_method":         0,
	}
	if len(audit.Columns) != len(want) {
		t.Fatalf("audited %d columns, want %d", len(audit.Columns), len(want))
	}
	for _, col := range audit.Columns {
		if col.Nulls != want[col.Column] {
			t.Errorf("%s: %d nulls, want %d", col.Column, col.Nulls, want[col.Column])
		}
	}
}

func TestReportService_ProfitabilityReport(t *testing.T) {
	ctx := testhelpers.SetupTestContext(t)
	testhelpers.InsertFixtureOrders(t, ctx.DB)

	enricher := ordersapp.NewEnrichmentService(ctx.OrderRepo, ctx.UoW)
	if _, err := enricher.EnrichAll(); err != nil {
		t.Fatalf("EnrichAll: %v", err)
	}

	service := NewReportService(ctx.ReportRepo, ctx.Cache)
	report, err := service.ProfitabilityReport()
	if err != nil {
		t.Fatalf("ProfitabilityReport: %v", err)
	}

	// Profits par jour: les horodatages des fixtures s'étalent sur les
	// 5 derniers jours; on vérifie les totaux, pas le découpage.
	var orders int
	var total float64
	for _, wp := range report.WeekdayProfits {
		orders += wp.Orders
		total += wp.TotalProfit
	}
	if orders != 5 {
		t.Errorf("weekday profits cover %d orders, want 5", orders)
	}
	if total != 45 {
		t.Errorf("weekday profits total %v, want 45", total)
	}

	// Moyens de paiement, triés par usage décroissant puis par nom.
	wantUsage := []struct {
		method string
		orders int
		value  float64
	}{
		{"Cash on Delivery", 2, 650},
		{"Credit Card", 2, 200},
		{"Digital Wallet", 1, 300},
	}
	if len(report.PaymentUsage) != len(wantUsage) {
		t.Fatalf("got %d payment methods, want %d", len(report.PaymentUsage), len(wantUsage))
	}
	for i, w := range wantUsage {
		got := report.PaymentUsage[i]
		if got.Method != w.method || got.Orders != w.orders || got.TotalOrderValue != w.value {
			t.Errorf("payment[%d] = %+v, want %+v", i, got, w)
		}
	}

	// Cohorte rentable (profit > 1): commandes 1, 2, 4. La commande 4
	// (valeur NULL) a des pourcentages NULL, ignorés par AVG.
	if report.Profitable.Orders != 3 {
		t.Errorf("profitable cohort has %d orders, want 3", report.Profitable.Orders)
	}
	if report.Profitable.AvgCommissionPct == nil || *report.Profitable.AvgCommissionPct != 22.5 {
		t.Errorf("profitable avg commission pct = %v, want 22.5", report.Profitable.AvgCommissionPct)
	}
	if report.Profitable.AvgDiscountPct == nil || *report.Profitable.AvgDiscountPct != 10 {
		t.Errorf("profitable avg discount pct = %v, want 10", report.Profitable.AvgDiscountPct)
	}

	// Cohorte non rentable (profit < 0): commandes 3 et 5.
	if report.Unprofitable.Orders != 2 {
		t.Errorf("unprofitable cohort has %d orders, want 2", report.Unprofitable.Orders)
	}
	if report.Unprofitable.AvgCommissionPct == nil || *report.Unprofitable.AvgCommissionPct != 5 {
		t.Errorf("unprofitable avg commission pct = %v, want 5", report.Unprofitable.AvgCommissionPct)
	}
	if report.Unprofitable.AvgDiscountPct == nil || *report.Unprofitable.AvgDiscountPct != 0 {
		t.Errorf("unprofitable avg discount pct = %v, want 0", report.Unprofitable.AvgDiscountPct)
	}
}

func TestReportService_ProfitabilityReportCached(t *testing.T) {
	ctx := testhelpers.SetupTestContext(t)
	testhelpers.InsertFixtureOrders(t, ctx.DB)

	enricher := ordersapp.NewEnrichmentService(ctx.OrderRepo, ctx.UoW)
	if _, err := enricher.EnrichAll(); err != nil {
		t.Fatalf("EnrichAll: %v", err)
	}

	service := NewReportService(ctx.ReportRepo, ctx.Cache)

	first, err := service.ProfitabilityReport()
	if err != nil {
		t.Fatal(err)
	}
	second, err := service.ProfitabilityReport()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second call should return the cached report")
	}

	service.InvalidateCache()
	third, err := service.ProfitabilityReport()
	if err != nil {
		t.Fatal(err)
	}
	if third == first {
		t.Error("report should be recomputed after cache invalidation")
	}
}

func TestReportService_CompareActualVsSimulated(t *testing.T) {
	ctx := testhelpers.SetupTestContext(t)
	testhelpers.InsertFixtureOrders(t, ctx.DB)

	enricher := ordersapp.NewEnrichmentService(ctx.OrderRepo, ctx.UoW)
	if _, err := enricher.EnrichAll(); err != nil {
		t.Fatalf("EnrichAll: %v", err)
	}
	simulator := simulationapp.NewSimulationService(ctx.SimulationRepo, ctx.UoW)
	if _, err := simulator.Run(simulationdomain.DefaultPolicyParams()); err != nil {
		t.Fatalf("simulation Run: %v", err)
	}

	service := NewReportService(ctx.ReportRepo, ctx.Cache)

	rows, err := service.CompareActualVsSimulated(0)
	if err != nil {
		t.Fatalf("CompareActualVsSimulated: %v", err)
	}
	if len(rows) != len(testhelpers.FixtureOrders()) {
		t.Fatalf("got %d comparison rows, want %d", len(rows), len(testhelpers.FixtureOrders()))
	}

	// Commande de référence: profit réel 15, profit simulé 27.
	ref := rows[0]
	if ref.OrderID != 1 {
		t.Fatalf("first row is order %d, want 1 (ordered by id)", ref.OrderID)
	}
	if ref.ActualProfit != 15 || ref.SimulatedProfit != 27 || ref.Delta != 12 {
		t.Errorf("reference row = %+v, want actual 15 / simulated 27 / delta 12", ref)
	}

	limited, err := service.CompareActualVsSimulated(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d rows", len(limited))
	}

	actual, simulated, joined, err := ctx.ReportRepo.JoinCounts()
	if err != nil {
		t.Fatal(err)
	}
	if actual != 5 || simulated != 5 || joined != 5 {
		t.Errorf("join counts = %d/%d/%d, want 5/5/5", actual, simulated, joined)
	}
}
