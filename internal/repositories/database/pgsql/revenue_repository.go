package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
)

// PgxRevenueRepository reads the raw revenue collections. Filtering by document
// type and deduplication happen in the threshold engine, not here.
type PgxRevenueRepository struct {
	BaseRepository
}

func newPgxRevenueRepository(pool *pgxpool.Pool) portsrepo.RevenueSourceRepository {
	return &PgxRevenueRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RevenueSourceRepository = (*PgxRevenueRepository)(nil)

func (r *PgxRevenueRepository) ListSalesDocuments(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SalesDocument, error) {
	query := `
		SELECT document_id, tenant_id, number, document_type, issue_date, total, is_domestic
		FROM sales_documents
		WHERE tenant_id = $1 AND issue_date BETWEEN $2 AND $3
		ORDER BY issue_date, document_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sales documents", err)
	}
	defer rows.Close()

	docs := []domain.SalesDocument{}
	for rows.Next() {
		var m models.SalesDocument
		if err := rows.Scan(&m.DocumentID, &m.TenantID, &m.Number, &m.DocumentType, &m.IssueDate, &m.Total, &m.IsDomestic); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sales document row", err)
		}
		docs = append(docs, mapping.ToDomainSalesDocument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sales document rows", err)
	}
	return docs, nil
}

// ListFiscalSummaries aggregates the linked book entry ids of each summary in the same query.
func (r *PgxRevenueRepository) ListFiscalSummaries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.FiscalDaySummary, error) {
	query := `
		SELECT s.summary_id, s.tenant_id, s.summary_date, s.total_amount, s.domestic_amount,
		       COALESCE(array_agg(l.book_entry_id::text ORDER BY l.book_entry_id) FILTER (WHERE l.book_entry_id IS NOT NULL), '{}'::text[])
		FROM fiscal_day_summaries s
		LEFT JOIN fiscal_summary_book_entries l ON l.summary_id = s.summary_id
		WHERE s.tenant_id = $1 AND s.summary_date BETWEEN $2 AND $3
		GROUP BY s.summary_id
		ORDER BY s.summary_date, s.summary_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal day summaries", err)
	}
	defer rows.Close()

	summaries := []domain.FiscalDaySummary{}
	for rows.Next() {
		var (
			m       models.FiscalDaySummary
			linkIDs []string
		)
		if err := rows.Scan(&m.SummaryID, &m.TenantID, &m.SummaryDate, &m.TotalAmount, &m.DomesticAmount, &linkIDs); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal day summary row", err)
		}
		summaries = append(summaries, mapping.ToDomainFiscalDaySummary(m, linkIDs))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal day summary rows", err)
	}
	return summaries, nil
}

func (r *PgxRevenueRepository) ListBookEntries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.BookEntry, error) {
	query := `
		SELECT entry_id, tenant_id, entry_date, amount, sales_document_id
		FROM book_entries
		WHERE tenant_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date, entry_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query book entries", err)
	}
	defer rows.Close()

	entries := []domain.BookEntry{}
	for rows.Next() {
		var m models.BookEntry
		if err := rows.Scan(&m.EntryID, &m.TenantID, &m.EntryDate, &m.Amount, &m.SalesDocumentID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan book entry row", err)
		}
		entries = append(entries, mapping.ToDomainBookEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating book entry rows", err)
	}
	return entries, nil
}
