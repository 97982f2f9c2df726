package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/session"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements client.Client in memory and records every call.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	users    map[string]*models.User // by token
	accounts map[string]string       // email -> password
	loginTok string

	txs      map[int64]*models.Transaction
	products map[int64]*models.Product
	nextID   int64

	scan        *models.ReceiptScan
	scanImage   string
	failProduct string
	daily       models.Calendar
	monthly     models.Calendar

	lastProfile models.ProfileUpdate
	lastPwd     string
}

var _ client.Client = (*fakeAPI)(nil)

var errRejected = &client.HTTPError{Status: 400}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users:    map[string]*models.User{"abc123": {ID: 7, Username: "ala", Email: "ala@example.test"}},
		accounts: map[string]string{"ala@example.test": "secret"},
		loginTok: "abc123",
		txs:      map[int64]*models.Transaction{},
		products: map[int64]*models.Product{},
		nextID:   100,
	}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) auth(token string) error {
	if _, ok := f.users[token]; !ok {
		return &client.HTTPError{Status: 401}
	}
	return nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (string, error) {
	f.record("Login")
	if f.accounts[email] != password {
		return "", errRejected
	}
	return f.loginTok, nil
}

func (f *fakeAPI) Register(_ context.Context, req models.RegistrationRequest) (string, error) {
	f.record("Register")
	if _, ok := f.accounts[req.Email]; ok {
		return "", errRejected
	}
	f.accounts[req.Email] = req.Password1
	f.users["reg-tok"] = &models.User{ID: 8, Username: req.Username, Email: req.Email}
	return "reg-tok", nil
}

func (f *fakeAPI) FetchProfile(_ context.Context, token string) (*models.User, error) {
	f.record("FetchProfile")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	return f.users[token].Clone(), nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, token string, upd models.ProfileUpdate) error {
	f.record("UpdateProfile")
	if err := f.auth(token); err != nil {
		return err
	}
	f.lastProfile = upd
	f.users[token].Username = upd.Username
	return nil
}

func (f *fakeAPI) ChangePassword(_ context.Context, token string, password string) error {
	f.record("ChangePassword")
	if err := f.auth(token); err != nil {
		return err
	}
	f.lastPwd = password
	return nil
}

func (f *fakeAPI) ListTransactions(_ context.Context, token string) ([]models.Transaction, error) {
	f.record("ListTransactions")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(f.txs))
	for _, tx := range f.txs {
		out = append(out, *tx)
	}
	return out, nil
}

func (f *fakeAPI) GetTransaction(_ context.Context, token string, id int64) (*models.Transaction, error) {
	f.record("GetTransaction")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	tx, ok := f.txs[id]
	if !ok {
		return nil, &client.HTTPError{Status: 404}
	}
	cp := *tx
	for _, p := range f.products {
		if p.Transaction == id {
			cp.Products = append(cp.Products, *p)
		}
	}
	return &cp, nil
}

func (f *fakeAPI) CreateTransaction(_ context.Context, token string, in models.TransactionInput) (*models.Transaction, error) {
	f.record("CreateTransaction")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	f.nextID++
	tx := &models.Transaction{ID: f.nextID, Date: in.Date, TotalAmount: in.TotalAmount, Description: in.Description}
	f.txs[tx.ID] = tx
	return tx, nil
}

func (f *fakeAPI) UpdateTransaction(_ context.Context, token string, id int64, in models.TransactionInput) error {
	f.record("UpdateTransaction")
	if err := f.auth(token); err != nil {
		return err
	}
	tx, ok := f.txs[id]
	if !ok {
		return &client.HTTPError{Status: 404}
	}
	tx.Date, tx.TotalAmount, tx.Description = in.Date, in.TotalAmount, in.Description
	return nil
}

func (f *fakeAPI) DeleteTransaction(_ context.Context, token string, id int64) error {
	f.record("DeleteTransaction")
	if err := f.auth(token); err != nil {
		return err
	}
	delete(f.txs, id)
	return nil
}

func (f *fakeAPI) ListProducts(_ context.Context, token string) ([]models.Product, error) {
	f.record("ListProducts")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, token string, in models.ProductInput) (*models.Product, error) {
	f.record("CreateProduct")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	if in.Name == f.failProduct {
		return nil, errRejected
	}
	f.nextID++
	p := &models.Product{ID: f.nextID, Name: in.Name, Price: in.Price, Transaction: in.Transaction}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, token string, id int64, in models.ProductInput) error {
	f.record("UpdateProduct")
	if err := f.auth(token); err != nil {
		return err
	}
	p, ok := f.products[id]
	if !ok {
		return &client.HTTPError{Status: 404}
	}
	p.Name, p.Price, p.Transaction = in.Name, in.Price, in.Transaction
	return nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, token string, id int64) error {
	f.record("DeleteProduct")
	if err := f.auth(token); err != nil {
		return err
	}
	delete(f.products, id)
	return nil
}

func (f *fakeAPI) ScanReceipt(_ context.Context, token string, filename string, image io.Reader) (*models.ReceiptScan, error) {
	f.record("ScanReceipt")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	b, err := io.ReadAll(image)
	if err != nil {
		return nil, err
	}
	f.scanImage = filename + ":" + string(b)
	if f.scan == nil {
		return nil, errors.New("no receipt configured")
	}
	return f.scan, nil
}

func (f *fakeAPI) DailyCalendar(_ context.Context, token string, _, _ int) (models.Calendar, error) {
	f.record("DailyCalendar")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	return f.daily, nil
}

func (f *fakeAPI) MonthlyCalendar(_ context.Context, token string, _ int) (models.Calendar, error) {
	f.record("MonthlyCalendar")
	if err := f.auth(token); err != nil {
		return nil, err
	}
	return f.monthly, nil
}

type memTokens struct{ token string }

func (m *memTokens) LoadToken(context.Context) (string, error)    { return m.token, nil }
func (m *memTokens) SaveToken(_ context.Context, t string) error { m.token = t; return nil }
func (m *memTokens) DeleteToken(context.Context) error           { m.token = ""; return nil }

// newSession returns a hydrated session; loggedIn selects the state.
func newSession(t *testing.T, api *fakeAPI, loggedIn bool) (*session.Store, *memTokens) {
	t.Helper()
	tokens := &memTokens{}
	s := session.NewStore(tokens, api, nil)
	s.Hydrate(context.Background())
	if loggedIn {
		require.NoError(t, s.Login(context.Background(), "abc123"))
	}
	return s, tokens
}
