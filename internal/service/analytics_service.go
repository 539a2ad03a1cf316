package service

import (
	"context"
	"time"

	"github.com/carson-networks/finance-tracker/internal/analytics"
	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// AnalyticsService loads transactions and hands them to the analytics engine.
type AnalyticsService struct {
	storage *storage.Storage
	now     clock
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store *storage.Storage) *AnalyticsService {
	return &AnalyticsService{storage: store, now: time.Now}
}

func (s *AnalyticsService) load(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, queryToFilter(query))
	if err != nil {
		return nil, err
	}
	return transactionsFromStorage(rows), nil
}

// Summary returns all-time totals and the month-over-month changes.
func (s *AnalyticsService) Summary(ctx context.Context) (analytics.SummaryStats, error) {
	txs, err := s.load(ctx, domain.TransactionQuery{})
	if err != nil {
		return analytics.SummaryStats{}, err
	}
	return analytics.Summary(txs, s.now()), nil
}

// MonthlyTrends returns per-month income and expense for the last six months.
func (s *AnalyticsService) MonthlyTrends(ctx context.Context) ([]analytics.MonthlyTrend, error) {
	now := s.now()
	window := analytics.TrendWindow(now)
	txs, err := s.load(ctx, domain.TransactionQuery{From: &window.From, To: &window.To, Ascending: true})
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyTrends(txs, now), nil
}

// SpendingByCategory totals expenses per category inside the optional range.
func (s *AnalyticsService) SpendingByCategory(ctx context.Context, from, to *time.Time) ([]analytics.GroupTotal, error) {
	return s.byCategory(ctx, domain.TransactionQuery{Kind: domain.KindExpense, From: from, To: to})
}

// IncomeByCategory totals income per category inside the optional range.
func (s *AnalyticsService) IncomeByCategory(ctx context.Context, from, to *time.Time) ([]analytics.GroupTotal, error) {
	return s.byCategory(ctx, domain.TransactionQuery{Kind: domain.KindIncome, From: from, To: to})
}

func (s *AnalyticsService) byCategory(ctx context.Context, query domain.TransactionQuery) ([]analytics.GroupTotal, error) {
	txs, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}
	return analytics.CategoryTotals(txs, query), nil
}

// MonthlyComparison contrasts the current calendar month with the previous one.
func (s *AnalyticsService) MonthlyComparison(ctx context.Context) (analytics.MonthComparison, error) {
	now := s.now()
	from := analytics.PreviousMonth(now).From
	txs, err := s.load(ctx, domain.TransactionQuery{From: &from})
	if err != nil {
		return analytics.MonthComparison{}, err
	}
	return analytics.CompareMonths(txs, now), nil
}
