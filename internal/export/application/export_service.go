package application

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"profitsim/database"
	analyticsdomain "profitsim/internal/analytics/domain"
	"profitsim/internal/export/domain"
	"profitsim/internal/export/infrastructure"
	shareddomain "profitsim/internal/shared/domain"
	sharedinfra "profitsim/internal/shared/infrastructure"
)

// ExportService exporte les commandes enrichies (CSV, Parquet) et le
// rapport de comparaison réel vs simulé (CSV). Les rendus CSV sont
// parallélisés par lots sur un pool de workers, puis assemblés dans
// l'ordre d'origine.
type ExportService struct {
	exportRepo *infrastructure.ExportQueryRepository
	batchSize  int
	workerSize int
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(exportRepo *infrastructure.ExportQueryRepository) *ExportService {
	return &ExportService{
		exportRepo: exportRepo,
		batchSize:  1000,
		workerSize: 4,
	}
}

// ExportOrdersCSV génère un CSV en mémoire des commandes enrichies des
// N derniers jours.
func (s *ExportService) ExportOrdersCSV(days int) ([]byte, error) {
	rows, err := s.fetch(days)
	if err != nil {
		return nil, err
	}

	// Rendu des cellules par lots parallèles; l'assemblage séquentiel
	// préserve l'ordre des lignes.
	rendered := make([][][]string, (len(rows)+s.batchSize-1)/s.batchSize)

	pool := sharedinfra.NewWorkerPool(s.workerSize)
	pool.Start()

	for i := range rendered {
		i := i
		start := i * s.batchSize
		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		if err := pool.Submit(func() error {
			out := make([][]string, len(batch))
			for j, row := range batch {
				out[j] = row.ToCSVRow()
			}
			rendered[i] = out
			return nil
		}); err != nil {
			pool.Stop()
			return nil, err
		}
	}

	pool.Wait()
	if err := pool.Err(); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	buf.Grow(len(rows) * 96)
	w := csv.NewWriter(buf)

	if err := w.Write(domain.CSVHeaders()); err != nil {
		return nil, err
	}
	for _, batch := range rendered {
		if err := w.WriteAll(batch); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportOrdersParquet écrit un fichier Parquet (Snappy) des commandes
// enrichies des N derniers jours.
func (s *ExportService) ExportOrdersParquet(days int, path string) error {
	rows, err := s.fetch(days)
	if err != nil {
		return err
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("open parquet file %s: %w", path, err)
	}

	pw, err := writer.NewParquetWriter(fw, new(database.EnrichedOrderParquet), 2)
	if err != nil {
		fw.Close()
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.PageSize = 8 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		rec := database.EnrichedOrderParquet{
			OrderID:         row.OrderID,
			OrderDate:       row.OrderedAt.Format("2006-01-02 15:04:05"),
			OrderValue:      row.OrderValue,
			PaymentMethod:   row.PaymentMethod,
			DiscountKind:    row.DiscountKind,
			DiscountAmount:  row.DiscountAmount,
			TotalCosts:      row.TotalCosts,
			Revenue:         row.Revenue,
			Profit:          row.Profit,
			SimulatedProfit: shareddomain.OrZero(row.SimulatedProfit),
		}
		if err := pw.Write(rec); err != nil {
			fw.Close()
			return fmt.Errorf("write parquet row %d: %w", row.OrderID, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalize parquet: %w", err)
	}
	return fw.Close()
}

// ExportComparisonCSV génère le CSV du rapport réel vs simulé.
func (s *ExportService) ExportComparisonCSV(rows []analyticsdomain.ComparisonRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(domain.ComparisonCSVHeaders()); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.OrderID, 10),
			strconv.FormatFloat(row.OrderValue, 'f', 2, 64),
			strconv.FormatFloat(row.ActualProfit, 'f', 2, 64),
			strconv.FormatFloat(row.SimulatedProfit, 'f', 2, 64),
			strconv.FormatFloat(row.Delta, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) fetch(days int) ([]*domain.EnrichedOrderRow, error) {
	dateRange, err := shareddomain.NewDateRangeFromDays(days)
	if err != nil {
		return nil, err
	}
	return s.exportRepo.GetEnrichedOrders(dateRange)
}
