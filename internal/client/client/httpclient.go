package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/models"
)

// HTTPClient implements Client on top of a Gateway.
type HTTPClient struct {
	gw *Gateway
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient wraps gw.
func NewHTTPClient(gw *Gateway) *HTTPClient {
	return &HTTPClient{gw: gw}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	raw, err := c.gw.Request(ctx, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   models.LoginRequest{Email: email, Password: password},
	}, "")
	if err != nil {
		return "", err
	}
	resp, err := decode[models.LoginResponse](raw, "login response")
	if err != nil {
		return "", err
	}
	return resp.Key, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegistrationRequest) (string, error) {
	raw, err := c.gw.Request(ctx, "/auth/registration/", RequestOptions{Method: http.MethodPost, Body: req}, "")
	if err != nil {
		return "", err
	}
	resp, err := decode[models.RegistrationResponse](raw, "registration response")
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) FetchProfile(ctx context.Context, token string) (*models.User, error) {
	raw, err := c.gw.Request(ctx, "/auth/user/", RequestOptions{Method: http.MethodGet}, token)
	if err != nil {
		return nil, err
	}
	return decode[models.User](raw, "user profile")
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) error {
	_, err := c.gw.Request(ctx, "/auth/user/", RequestOptions{Method: http.MethodPatch, Body: upd}, token)
	return err
}

func (c *HTTPClient) ChangePassword(ctx context.Context, token string, password string) error {
	_, err := c.gw.Request(ctx, "/auth/password/", RequestOptions{
		Method: http.MethodPost,
		Body:   models.PasswordChange{Password: password},
	}, token)
	return err
}

func (c *HTTPClient) ListTransactions(ctx context.Context, token string) ([]models.Transaction, error) {
	raw, err := c.gw.Request(ctx, "/transactions/", RequestOptions{Method: http.MethodGet}, token)
	if err != nil {
		return nil, err
	}
	txs, err := decode[models.Transactions](raw, "transaction list")
	if err != nil {
		return nil, err
	}
	return *txs, nil
}

func (c *HTTPClient) GetTransaction(ctx context.Context, token string, id int64) (*models.Transaction, error) {
	raw, err := c.gw.Request(ctx, transactionPath(id), RequestOptions{Method: http.MethodGet}, token)
	if err != nil {
		return nil, err
	}
	return decode[models.Transaction](raw, "transaction")
}

func (c *HTTPClient) CreateTransaction(ctx context.Context, token string, in models.TransactionInput) (*models.Transaction, error) {
	raw, err := c.gw.Request(ctx, "/transactions/", RequestOptions{Method: http.MethodPost, Body: in}, token)
	if err != nil {
		return nil, err
	}
	return decode[models.Transaction](raw, "transaction")
}

func (c *HTTPClient) UpdateTransaction(ctx context.Context, token string, id int64, in models.TransactionInput) error {
	_, err := c.gw.Request(ctx, transactionPath(id), RequestOptions{Method: http.MethodPut, Body: in}, token)
	return err
}

func (c *HTTPClient) DeleteTransaction(ctx context.Context, token string, id int64) error {
	_, err := c.gw.Request(ctx, transactionPath(id), RequestOptions{Method: http.MethodDelete}, token)
	return err
}

func (c *HTTPClient) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	raw, err := c.gw.Request(ctx, "/products/", RequestOptions{Method: http.MethodGet}, token)
	if err != nil {
		return nil, err
	}
	ps, err := decode[models.Products](raw, "product list")
	if err != nil {
		return nil, err
	}
	return *ps, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, token string, in models.ProductInput) (*models.Product, error) {
	raw, err := c.gw.Request(ctx, "/products/", RequestOptions{Method: http.MethodPost, Body: in}, token)
	if err != nil {
		return nil, err
	}
	return decode[models.Product](raw, "product")
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, token string, id int64, in models.ProductInput) error {
	_, err := c.gw.Request(ctx, productPath(id), RequestOptions{Method: http.MethodPut, Body: in}, token)
	return err
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, token string, id int64) error {
	_, err := c.gw.Request(ctx, productPath(id), RequestOptions{Method: http.MethodDelete}, token)
	return err
}

// ScanReceipt uploads a receipt photo as the multipart field "image".
func (c *HTTPClient) ScanReceipt(ctx context.Context, token string, filename string, image io.Reader) (*models.ReceiptScan, error) {
	form := NewForm().AddFile("image", filename, image)
	raw, err := c.gw.Request(ctx, "/receipts/scan/", RequestOptions{Method: http.MethodPost, Body: form}, token)
	if err != nil {
		return nil, err
	}
	return decode[models.ReceiptScan](raw, "receipt scan")
}

func (c *HTTPClient) DailyCalendar(ctx context.Context, token string, year, month int) (models.Calendar, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range", month)
	}
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	raw, err := c.gw.Request(ctx, "/api/calendar/daily/?"+q.Encode(), RequestOptions{Method: http.MethodGet}, token)
	if err != nil {
		return nil, err
	}
	cal, err := decode[models.Calendar](raw, "daily calendar")
	if err != nil {
		return nil, err
	}
	if err := cal.ValidateRange(DaysIn(year, time.Month(month))); err != nil {
		return nil, &ParseError{Shape: "daily calendar", Err: err}
	}
	return *cal, nil
}

func (c *HTTPClient) MonthlyCalendar(ctx context.Context, token string, year int) (models.Calendar, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	raw, err := c.gw.Request(ctx, "/api/calendar/monthly/?"+q.Encode(), RequestOptions{Method: http.MethodGet}, token)
	if err != nil {
		return nil, err
	}
	cal, err := decode[models.Calendar](raw, "monthly calendar")
	if err != nil {
		return nil, err
	}
	if err := cal.ValidateRange(12); err != nil {
		return nil, &ParseError{Shape: "monthly calendar", Err: err}
	}
	return *cal, nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func transactionPath(id int64) string {
	return "/transactions/" + strconv.FormatInt(id, 10) + "/"
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10) + "/"
}
