package mapping

import (
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		TenantID:      d.TenantID,
		EntryNumber:   d.EntryNumber,
		EntryDate:     d.EntryDate,
		Description:   d.Description,
		Reference:     d.Reference,
		LegalEntityID: ToNullString(d.LegalEntityID),
		PeriodID:      d.PeriodID,
		Status:        models.EntryStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		TenantID:      m.TenantID,
		EntryNumber:   m.EntryNumber,
		EntryDate:     domain.DateOnly(m.EntryDate),
		Description:   m.Description,
		Reference:     m.Reference,
		LegalEntityID: FromNullString(m.LegalEntityID),
		PeriodID:      m.PeriodID,
		Status:        domain.EntryStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		SortOrder:   d.SortOrder,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		SortOrder:   m.SortOrder,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		TenantID:  m.TenantID,
		Code:      m.Code,
		Name:      m.Name,
		IsActive:  m.IsActive,
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:  m.PeriodID,
		TenantID:  m.TenantID,
		StartDate: domain.DateOnly(m.StartDate),
		EndDate:   domain.DateOnly(m.EndDate),
		Status:    domain.PeriodStatus(m.Status),
	}
}

// ToDomainNumberingSettings converts a model NumberingSettings to a domain NumberingSettings
func ToDomainNumberingSettings(m models.NumberingSettings) domain.NumberingSettings {
	return domain.NumberingSettings{
		TenantID:      m.TenantID,
		Prefix:        m.Prefix,
		StartSequence: m.StartSequence,
	}
}
