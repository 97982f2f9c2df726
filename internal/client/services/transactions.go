package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/session"
	"github.com/dmitrijs2005/receiptkeeper/internal/common"
)

// TransactionService manages transactions and their products.
type TransactionService interface {
	// List returns all transactions, newest first.
	List(ctx context.Context) ([]models.Transaction, error)
	Get(ctx context.Context, id int64) (*models.Transaction, error)
	// Create adds an empty transaction; its total starts at 0.
	Create(ctx context.Context, date, description string) (*models.Transaction, error)
	Update(ctx context.Context, id int64, date, total, description string) error
	Delete(ctx context.Context, id int64) error

	// Products returns every product of the user, by name.
	Products(ctx context.Context) ([]models.Product, error)
	AddProduct(ctx context.Context, txID int64, name, price string) (*models.Product, error)
	UpdateProduct(ctx context.Context, txID, productID int64, name, price string) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type transactionService struct {
	api     client.Client
	session *session.Store
}

func NewTransactionService(api client.Client, sess *session.Store) TransactionService {
	return &transactionService{api: api, session: sess}
}

func (s *transactionService) List(ctx context.Context) ([]models.Transaction, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}

	txs, err := s.api.ListTransactions(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Time().After(txs[j].Time())
	})
	return txs, nil
}

func (s *transactionService) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}

	tx, err := s.api.GetTransaction(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, nil
}

func (s *transactionService) Create(ctx context.Context, date, description string) (*models.Transaction, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	date, err = models.NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	tx, err := s.api.CreateTransaction(ctx, token, models.TransactionInput{
		Date:        date,
		TotalAmount: "0",
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

func (s *transactionService) Update(ctx context.Context, id int64, date, total, description string) error {
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	date, err = models.NormalizeDate(date)
	if err != nil {
		return err
	}
	amount, err := models.ParseAmount(total)
	if err != nil {
		return err
	}

	err = s.api.UpdateTransaction(ctx, token, id, models.TransactionInput{
		Date:        date,
		TotalAmount: amount,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	return nil
}

func (s *transactionService) Delete(ctx context.Context, id int64) error {
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	if err := s.api.DeleteTransaction(ctx, token, id); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

func (s *transactionService) Products(ctx context.Context) ([]models.Product, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}

	ps, err := s.api.ListProducts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	sort.SliceStable(ps, func(i, j int) bool {
		return strings.ToLower(ps[i].Name) < strings.ToLower(ps[j].Name)
	})
	return ps, nil
}

func (s *transactionService) AddProduct(ctx context.Context, txID int64, name, price string) (*models.Product, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	in, err := productInput(txID, name, price)
	if err != nil {
		return nil, err
	}

	p, err := s.api.CreateProduct(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	return p, nil
}

func (s *transactionService) UpdateProduct(ctx context.Context, txID, productID int64, name, price string) error {
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	in, err := productInput(txID, name, price)
	if err != nil {
		return err
	}

	if err := s.api.UpdateProduct(ctx, token, productID, in); err != nil {
		return fmt.Errorf("update product %d: %w", productID, err)
	}
	return nil
}

func (s *transactionService) DeleteProduct(ctx context.Context, productID int64) error {
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	if err := s.api.DeleteProduct(ctx, token, productID); err != nil {
		return fmt.Errorf("delete product %d: %w", productID, err)
	}
	return nil
}

func productInput(txID int64, name, price string) (models.ProductInput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ProductInput{}, fmt.Errorf("product name: %w", common.ErrEmptyField)
	}
	amount, err := models.ParseAmount(price)
	if err != nil {
		return models.ProductInput{}, err
	}
	return models.ProductInput{Name: name, Price: amount, Transaction: txID}, nil
}
