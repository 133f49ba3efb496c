package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
	"github.com/SscSPs/bizledger/internal/utils/pagination"
)

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, description, reference,
		       legal_entity_id, period_id, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.LegalEntityID,
		&m.PeriodID,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// InsertEntry writes the header, then all lines in one batch. It must run inside
// the posting transaction so a failed line leaves no header behind.
func (r *PgxJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	q := r.conn(ctx)
	m := mapping.ToModelJournalEntry(entry)

	headerQuery := `
		INSERT INTO journal_entries (
			entry_id, tenant_id, entry_number, entry_date, description, reference,
			legal_entity_id, period_id, status, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := q.Exec(ctx, headerQuery,
		m.EntryID,
		m.TenantID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.LegalEntityID,
		m.PeriodID,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: entry number %s is already used", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, description, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range entry.Lines {
		ml := mapping.ToModelJournalLine(l)
		batch.Queue(lineQuery, ml.LineID, m.EntryID, ml.AccountID, ml.Debit, ml.Credit, ml.Description, ml.SortOrder)
	}
	br := q.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%w: line references an unknown account", apperrors.ErrAccountNotFound)
		}
		return apperrors.NewAppError(500, "failed to insert lines of journal entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByNumber retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByNumber(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_number = $2;`
	return r.findEntry(ctx, query, tenantID, entryNumber)
}

// LockEntryByNumber is FindEntryByNumber with the header row held FOR UPDATE.
func (r *PgxJournalRepository) LockEntryByNumber(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_number = $2 FOR UPDATE;`
	return r.findEntry(ctx, query, tenantID, entryNumber)
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, query, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	m, err := scanEntry(r.conn(ctx).QueryRow(ctx, query, tenantID, entryNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryNumber)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryNumber, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	lines, err := r.findLines(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, a.code, l.debit, l.credit, l.description, l.sort_order
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = $1
		ORDER BY l.sort_order, l.line_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines of journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.AccountCode, &m.Debit, &m.Credit, &m.Description, &m.SortOrder); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return lines, nil
}

// ListEntries retrieves a page of entry headers ordered by entry date and number, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	orderByClause := `ORDER BY entry_date DESC, entry_number DESC`
	args := []any{tenantID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeEntryCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` AND (entry_date, entry_number) < ($2, $3)`
		args = append(args, cursor.EntryDate, cursor.EntryNumber)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeEntryCursor(pagination.EntryCursor{EntryDate: last.EntryDate, EntryNumber: last.EntryNumber})
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

// SumEntryLines re-reads the persisted totals, inside the caller's transaction when there is one.
func (r *PgxJournalRepository) SumEntryLines(ctx context.Context, entryID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0) FROM journal_lines WHERE entry_id = $1;`
	var debit, credit decimal.Decimal
	if err := r.conn(ctx).QueryRow(ctx, query, entryID).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum lines of journal entry "+entryID, err)
	}
	return debit, credit, nil
}

// CountEntriesInYear counts drafts and posted entries alike; both consume numbers.
func (r *PgxJournalRepository) CountEntriesInYear(ctx context.Context, tenantID string, year int) (int64, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	query := `SELECT COUNT(*) FROM journal_entries WHERE tenant_id = $1 AND entry_date >= $2 AND entry_date < $3;`
	var count int64
	if err := r.conn(ctx).QueryRow(ctx, query, tenantID, from, from.AddDate(1, 0, 0)).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journal entries", err)
	}
	return count, nil
}

// UpdateEntryStatus moves an entry to status.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE entry_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, entryID, string(status), updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entryID)
	}
	return nil
}
