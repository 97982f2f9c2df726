package services

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/session"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
)

// ScanService turns a receipt photo into a transaction with products.
type ScanService interface {
	// Scan uploads the image, creates a transaction from the recognized
	// receipt and one product per item. It returns the new transaction id.
	// Nothing is undone when a later step fails.
	Scan(ctx context.Context, filename string, image io.Reader) (int64, error)
}

type scanService struct {
	api     client.Client
	session *session.Store
	logger  logging.Logger
}

func NewScanService(api client.Client, sess *session.Store, logger logging.Logger) ScanService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &scanService{api: api, session: sess, logger: logger}
}

func (s *scanService) Scan(ctx context.Context, filename string, image io.Reader) (int64, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return 0, err
	}

	receipt, err := s.api.ScanReceipt(ctx, token, filename, image)
	if err != nil {
		return 0, fmt.Errorf("scan receipt: %w", err)
	}

	tx, err := s.api.CreateTransaction(ctx, token, models.TransactionInput{
		Date:        receipt.TransactionDate(),
		TotalAmount: models.AmountFromFloat(receipt.Total),
		Description: receipt.Description(),
	})
	if err != nil {
		return 0, fmt.Errorf("create transaction from receipt: %w", err)
	}

	for i, item := range receipt.Items {
		_, err := s.api.CreateProduct(ctx, token, models.ProductInput{
			Name:        item.Name,
			Price:       models.AmountFromFloat(item.Price),
			Transaction: tx.ID,
		})
		if err != nil {
			s.logger.Warn(ctx, "receipt import stopped", "transaction", tx.ID, "created", i, "items", len(receipt.Items))
			return tx.ID, fmt.Errorf("create product %q: %w", item.Name, err)
		}
	}

	s.logger.Info(ctx, "receipt imported", "transaction", tx.ID, "items", len(receipt.Items))
	return tx.ID, nil
}
