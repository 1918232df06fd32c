package application

import (
	"database/sql"
	"fmt"

	"profitsim/internal/orders/domain"
	"profitsim/internal/orders/infrastructure"
	sharedinfra "profitsim/internal/shared/infrastructure"
)

// EnrichmentService étape de dérivation financière du pipeline: parse
// le descripteur de remise de chaque commande, calcule les colonnes
// dérivées et les écrit par lots transactionnels via un pool de workers.
type EnrichmentService struct {
	orderRepo  *infrastructure.OrderRepository
	uow        sharedinfra.UnitOfWork
	batchSize  int
	workerSize int
}

// NewEnrichmentService crée une nouvelle instance de EnrichmentService
func NewEnrichmentService(orderRepo *infrastructure.OrderRepository, uow sharedinfra.UnitOfWork) *EnrichmentService {
	return &EnrichmentService{
		orderRepo:  orderRepo,
		uow:        uow,
		batchSize:  500,
		workerSize: 4,
	}
}

// EnrichAll charge la table complète, enrichit chaque ligne en mémoire
// puis persiste les colonnes dérivées. Retourne le nombre de commandes
// traitées.
func (s *EnrichmentService) EnrichAll() (int, error) {
	orders, err := s.orderRepo.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("load orders: %w", err)
	}

	// Calcul pur en mémoire: parsing + dérivation par ligne.
	for _, o := range orders {
		o.Enrich()
	}

	// Écriture par lots: chaque lot est une transaction soumise au
	// pool, un échec de lot fait échouer l'étape entière.
	pool := sharedinfra.NewWorkerPool(s.workerSize)
	pool.Start()

	for start := 0; start < len(orders); start += s.batchSize {
		end := start + s.batchSize
		if end > len(orders) {
			end = len(orders)
		}
		batch := orders[start:end]

		if err := pool.Submit(func() error {
			return s.persistBatch(batch)
		}); err != nil {
			pool.Stop()
			return 0, fmt.Errorf("submit batch: %w", err)
		}
	}

	pool.Wait()
	if err := pool.Err(); err != nil {
		return 0, fmt.Errorf("persist derived columns: %w", err)
	}

	return len(orders), nil
}

// persistBatch écrit un lot de commandes enrichies dans une transaction.
func (s *EnrichmentService) persistBatch(batch []*domain.Order) error {
	return s.uow.Execute(func(tx *sql.Tx) error {
		txRepo := s.orderRepo.WithTx(tx)
		for _, o := range batch {
			if err := txRepo.UpdateDerived(o); err != nil {
				return fmt.Errorf("order %d: %w", o.ID, err)
			}
		}
		return nil
	})
}
