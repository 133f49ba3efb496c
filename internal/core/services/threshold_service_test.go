package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/core/services"
	"github.com/SscSPs/bizledger/internal/core/threshold"
)

func TestThresholdService_ReportCalendarYear(t *testing.T) {
	repo := new(MockRevenueRepository)
	asOf := time.Date(2024, time.August, 10, 0, 0, 0, 0, time.UTC)
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	repo.On("ListSalesDocuments", mock.Anything, "tenant-1", from, to).Return([]domain.SalesDocument{
		{DocumentID: "inv-1", DocumentType: domain.SalesInvoice, IssueDate: time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC), Total: d("700"), IsDomestic: true},
	}, nil).Once()
	repo.On("ListFiscalSummaries", mock.Anything, "tenant-1", from, to).Return([]domain.FiscalDaySummary{}, nil).Once()
	repo.On("ListBookEntries", mock.Anything, "tenant-1", from, to).Return([]domain.BookEntry{
		{EntryID: "be-1", Date: time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC), Amount: d("400")},
	}, nil).Once()

	svc := services.NewThresholdService(repo, d("1000"), d("0"))
	report, err := svc.Report(context.Background(), "tenant-1", threshold.WindowCalendarYear, asOf)

	require.NoError(t, err)
	assert.Equal(t, from, report.From)
	assert.Equal(t, to, report.To)
	assert.Len(t, report.Buckets, threshold.BucketCount)
	assert.True(t, report.Status.Breached)
	require.NotNil(t, report.Status.BreachMonth)
	assert.Equal(t, time.April, report.Status.BreachMonth.Month())
	assert.True(t, d("1100").Equal(report.Status.Total))
	repo.AssertExpectations(t)
}

func TestThresholdService_RollingWindowUsesItsOwnLimit(t *testing.T) {
	repo := new(MockRevenueRepository)
	asOf := time.Date(2024, time.August, 10, 0, 0, 0, 0, time.UTC)
	repo.On("ListSalesDocuments", mock.Anything, "tenant-1", mock.Anything, mock.Anything).Return([]domain.SalesDocument{}, nil).Once()
	repo.On("ListFiscalSummaries", mock.Anything, "tenant-1", mock.Anything, mock.Anything).Return([]domain.FiscalDaySummary{}, nil).Once()
	repo.On("ListBookEntries", mock.Anything, "tenant-1", mock.Anything, mock.Anything).Return([]domain.BookEntry{
		{EntryID: "be-1", Date: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), Amount: d("400")},
	}, nil).Once()

	report, err := services.NewThresholdService(repo, d("100"), d("1000")).
		Report(context.Background(), "tenant-1", threshold.WindowRolling365, asOf)

	require.NoError(t, err)
	assert.Equal(t, asOf.AddDate(0, 0, -364), report.From)
	assert.Equal(t, asOf, report.To)
	assert.False(t, report.Status.Breached)
	assert.True(t, d("1000").Equal(report.Status.Limit))
	assert.True(t, d("40").Equal(report.Status.UsedPercent))
}

func TestThresholdService_UnknownWindow(t *testing.T) {
	repo := new(MockRevenueRepository)

	_, err := services.NewThresholdService(repo, d("1"), d("1")).
		Report(context.Background(), "tenant-1", threshold.Window("quarter"), time.Now())

	assert.Error(t, err)
	repo.AssertNotCalled(t, "ListSalesDocuments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestThresholdService_SourceFailure(t *testing.T) {
	repo := new(MockRevenueRepository)
	boom := errors.New("timeout")
	repo.On("ListSalesDocuments", mock.Anything, "tenant-1", mock.Anything, mock.Anything).Return([]domain.SalesDocument{}, nil).Once()
	repo.On("ListFiscalSummaries", mock.Anything, "tenant-1", mock.Anything, mock.Anything).Return(nil, boom).Once()

	_, err := services.NewThresholdService(repo, d("1"), d("1")).
		Report(context.Background(), "tenant-1", threshold.WindowCalendarYear, time.Now())

	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "ListBookEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
