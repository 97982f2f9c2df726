package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/session"
	"github.com/shopspring/decimal"
)

// Period is one cell of a calendar report: a day of the month or a month of
// the year.
type Period struct {
	Index  int
	Amount float64
}

// Report is a complete calendar: every period is present, missing ones are 0.
type Report struct {
	Year    int
	Month   time.Month // zero for a monthly report
	Periods []Period
	Income  float64
	Expense float64
}

// Net is income plus expense (expense is negative).
func (r *Report) Net() float64 {
	return decimal.NewFromFloat(r.Income).Add(decimal.NewFromFloat(r.Expense)).InexactFloat64()
}

// ReportService builds profit and loss calendars.
type ReportService interface {
	Daily(ctx context.Context, year int, month time.Month) (*Report, error)
	Monthly(ctx context.Context, year int) (*Report, error)
}

type reportService struct {
	api     client.Client
	session *session.Store
}

func NewReportService(api client.Client, sess *session.Store) ReportService {
	return &reportService{api: api, session: sess}
}

func (s *reportService) Daily(ctx context.Context, year int, month time.Month) (*Report, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}

	cal, err := s.api.DailyCalendar(ctx, token, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("daily calendar %d-%02d: %w", year, month, err)
	}
	return fill(year, month, client.DaysIn(year, month), cal), nil
}

func (s *reportService) Monthly(ctx context.Context, year int) (*Report, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}

	cal, err := s.api.MonthlyCalendar(ctx, token, year)
	if err != nil {
		return nil, fmt.Errorf("monthly calendar %d: %w", year, err)
	}
	return fill(year, 0, 12, cal), nil
}

func fill(year int, month time.Month, n int, values map[int]float64) *Report {
	r := &Report{Year: year, Month: month, Periods: make([]Period, n)}
	income, expense := decimal.Zero, decimal.Zero
	for i := range r.Periods {
		v := values[i+1]
		r.Periods[i] = Period{Index: i + 1, Amount: v}
		switch d := decimal.NewFromFloat(v); {
		case d.IsPositive():
			income = income.Add(d)
		case d.IsNegative():
			expense = expense.Add(d)
		}
	}
	r.Income = income.InexactFloat64()
	r.Expense = expense.InexactFloat64()
	return r
}
