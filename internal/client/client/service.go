package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/models"
)

// Client is the receipts API as seen by the application services.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req models.RegistrationRequest) (string, error)
	FetchProfile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) error
	ChangePassword(ctx context.Context, token string, password string) error

	ListTransactions(ctx context.Context, token string) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, token string, id int64) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, token string, in models.TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, token string, id int64, in models.TransactionInput) error
	DeleteTransaction(ctx context.Context, token string, id int64) error

	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, in models.ProductInput) error
	DeleteProduct(ctx context.Context, token string, id int64) error

	ScanReceipt(ctx context.Context, token string, filename string, image io.Reader) (*models.ReceiptScan, error)

	DailyCalendar(ctx context.Context, token string, year, month int) (models.Calendar, error)
	MonthlyCalendar(ctx context.Context, token string, year int) (models.Calendar, error)
}
