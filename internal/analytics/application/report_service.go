package application

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"profitsim/internal/analytics/domain"
	"profitsim/internal/analytics/infrastructure"
	sharedinfra "profitsim/internal/shared/infrastructure"
)

// Libellés des cohortes partitionnées par signe du profit. Les seuils
// (> 1 rentable, < 0 non rentable) reprennent ceux du workload: les
// commandes dont le profit est dans [0, 1] n'appartiennent à aucune
// cohorte.
const (
	CohortProfitable   = "profitable"
	CohortUnprofitable = "unprofitable"
)

// ReportService calcule les rapports agrégés post-enrichissement.
// Les requêtes indépendantes sont exécutées en parallèle et le rapport
// complet est mis en cache (le pipeline relit plusieurs fois les mêmes
// agrégats lors des exports).
type ReportService struct {
	reportRepo *infrastructure.ReportQueryRepository
	cache      sharedinfra.Cache
	cacheTTL   time.Duration
}

// NewReportService crée une nouvelle instance de ReportService
func NewReportService(reportRepo *infrastructure.ReportQueryRepository, cache sharedinfra.Cache) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		cache:      cache,
		cacheTTL:   5 * time.Minute,
	}
}

// NullAudit audit des valeurs manquantes. Jamais mis en cache: il est
// exécuté avant l'enrichissement, sur un état de table différent.
func (s *ReportService) NullAudit() (*domain.NullAudit, error) {
	return s.reportRepo.NullAudit()
}

// ProfitabilityReport construit le rapport agrégé complet. Les quatre
// requêtes indépendantes (profits par jour, paiements, deux cohortes)
// sont lancées dans des goroutines parallèles puis synchronisées.
func (s *ReportService) ProfitabilityReport() (*domain.ProfitabilityReport, error) {
	cacheKey := sharedinfra.NewCacheKeyBuilder().
		Add("reports").
		Add("profitability").
		Build()
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*domain.ProfitabilityReport), nil
	}

	report := &domain.ProfitabilityReport{}

	var wg sync.WaitGroup
	errChan := make(chan error, 4)

	wg.Add(1)
	go func() {
		defer wg.Done()
		profitRows, err := s.reportRepo.ProfitRows()
		if err != nil {
			errChan <- fmt.Errorf("weekday profits: %w", err)
			return
		}
		report.WeekdayProfits = aggregateByWeekday(profitRows)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		usage, err := s.reportRepo.PaymentMethodUsage()
		if err != nil {
			errChan <- fmt.Errorf("payment usage: %w", err)
			return
		}
		report.PaymentUsage = usage
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		stats, err := s.reportRepo.CohortAverages(CohortProfitable, "> 1")
		if err != nil {
			errChan <- fmt.Errorf("profitable cohort: %w", err)
			return
		}
		report.Profitable = stats
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		stats, err := s.reportRepo.CohortAverages(CohortUnprofitable, "< 0")
		if err != nil {
			errChan <- fmt.Errorf("unprofitable cohort: %w", err)
			return
		}
		report.Unprofitable = stats
	}()

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	s.cache.Set(cacheKey, report, s.cacheTTL)
	return report, nil
}

// CompareActualVsSimulated rapport réel vs simulé par commande.
func (s *ReportService) CompareActualVsSimulated(limit int) ([]domain.ComparisonRow, error) {
	return s.reportRepo.CompareActualVsSimulated(limit)
}

// InvalidateCache vide le cache de rapports (après une nouvelle
// simulation ou un ré-enrichissement).
func (s *ReportService) InvalidateCache() {
	s.cache.Clear()
}

// aggregateByWeekday regroupe les profits par jour de la semaine,
// ordonné lundi → dimanche.
func aggregateByWeekday(rows []infrastructure.ProfitRow) []domain.WeekdayProfit {
	byDay := make(map[time.Weekday]*domain.WeekdayProfit)
	for _, row := range rows {
		day := row.OrderedAt.Weekday()
		wp, ok := byDay[day]
		if !ok {
			wp = &domain.WeekdayProfit{Weekday: day}
			byDay[day] = wp
		}
		wp.Orders++
		wp.TotalProfit += row.Profit
	}

	result := make([]domain.WeekdayProfit, 0, len(byDay))
	for _, wp := range byDay {
		result = append(result, *wp)
	}
	sort.Slice(result, func(i, j int) bool {
		// time.Weekday commence à Sunday; on présente lundi en tête.
		return mondayFirst(result[i].Weekday) < mondayFirst(result[j].Weekday)
	})
	return result
}

func mondayFirst(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}
