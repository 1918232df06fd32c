package application

import (
	"database/sql"
	"fmt"

	sharedinfra "profitsim/internal/shared/infrastructure"
	"profitsim/internal/simulation/domain"
	"profitsim/internal/simulation/infrastructure"
)

// SimulationService étape de simulation du pipeline: recrée la table
// de résultats puis la peuple sous les taux de la politique donnée,
// le tout dans une transaction unique (échec = aucun résultat partiel).
type SimulationService struct {
	simRepo *infrastructure.SimulationRepository
	uow     sharedinfra.UnitOfWork
}

// NewSimulationService crée une nouvelle instance de SimulationService
func NewSimulationService(simRepo *infrastructure.SimulationRepository, uow sharedinfra.UnitOfWork) *SimulationService {
	return &SimulationService{
		simRepo: simRepo,
		uow:     uow,
	}
}

// Run exécute la simulation complète et retourne le nombre de lignes
// écrites. Un identifiant de commande dupliqué viole la clé primaire
// et fait échouer l'étape entière: erreur fatale locale à cette étape,
// les étapes précédentes du pipeline restent valides.
func (s *SimulationService) Run(params domain.PolicyParams) (int, error) {
	var written int

	err := s.uow.Execute(func(tx *sql.Tx) error {
		txRepo := s.simRepo.WithTx(tx)

		if err := txRepo.Recreate(); err != nil {
			return fmt.Errorf("recreate simulation table: %w", err)
		}

		n, err := txRepo.PopulateFromOrders(params)
		if err != nil {
			return fmt.Errorf("populate simulation table: %w", err)
		}
		written = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}
