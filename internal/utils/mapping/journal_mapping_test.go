package mapping

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/models"
)

func TestJournalEntryMapping_NullableLegalEntity(t *testing.T) {
	entity := "le-1"
	entry := domain.JournalEntry{EntryID: "e1", EntryNumber: "JE-2024-000001", LegalEntityID: &entity, Status: domain.Posted}

	m := ToModelJournalEntry(entry)
	assert.Equal(t, sql.NullString{String: "le-1", Valid: true}, m.LegalEntityID)
	assert.Equal(t, models.Posted, m.Status)

	entry.LegalEntityID = nil
	assert.False(t, ToModelJournalEntry(entry).LegalEntityID.Valid)
}

func TestToDomainJournalEntry_TruncatesEntryDate(t *testing.T) {
	m := models.JournalEntry{
		EntryID:   "e1",
		EntryDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.FixedZone("CET", 3600)),
		Status:    models.Draft,
	}

	d := ToDomainJournalEntry(m)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), d.EntryDate)
	assert.Equal(t, domain.Draft, d.Status)
	assert.Nil(t, d.LegalEntityID)
}

func TestToDomainBookEntry_Link(t *testing.T) {
	linked := ToDomainBookEntry(models.BookEntry{
		EntryID:         "be-1",
		Amount:          decimal.NewFromInt(5),
		SalesDocumentID: sql.NullString{String: "inv-1", Valid: true},
	})
	require.NotNil(t, linked.SalesDocumentID)
	assert.Equal(t, "inv-1", *linked.SalesDocumentID)

	unlinked := ToDomainBookEntry(models.BookEntry{EntryID: "be-2"})
	assert.Nil(t, unlinked.SalesDocumentID)
}
