package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/bizledger/internal/apperrors"
)

func TestPgErrorCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgUndefinedTable, Message: `relation "journal_sequences" does not exist`}

	assert.Equal(t, pgUndefinedTable, pgErrorCode(pgErr))
	assert.Equal(t, pgUndefinedTable, pgErrorCode(apperrors.NewAppError(500, "wrapped", pgErr)))
	assert.Equal(t, pgUniqueViolation, pgErrorCode(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolation})))
	assert.Empty(t, pgErrorCode(errors.New("plain")))
}

func TestConn_FallsBackToPool(t *testing.T) {
	r := &BaseRepository{}
	assert.Equal(t, querier(r.Pool), r.conn(context.Background()))
}
