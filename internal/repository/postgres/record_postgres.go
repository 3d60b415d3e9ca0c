package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rpvscraper/internal/model"
	"rpvscraper/internal/repository"
)

// DefaultBatchSize is the number of rows per INSERT statement.
const DefaultBatchSize = 500

// PostgreSQL caps bind parameters per statement at 65535.
const maxParams = 65535

var insertColumns = []string{
	"arquivo",
	"data_disponibilizacao",
	"processo",
	"autores",
	"advogados",
	"valor_principal_bruto_liquido",
	"valor_juros_moratorios",
	"valor_honorarios_advocaticios",
	"paragrafo",
	"reu",
	"status",
}

const selectColumns = `id, arquivo, data_disponibilizacao, processo, autores, advogados,
		valor_principal_bruto_liquido, valor_juros_moratorios, valor_honorarios_advocaticios,
		paragrafo, reu, status, created_at, updated_at`

// RecordPostgres is a PostgreSQL implementation of repository.RecordRepository
// over the public.documentos table.
type RecordPostgres struct {
	db        *sql.DB
	batchSize int
}

// NewRecordPostgres creates a repository that inserts batchSize rows per statement.
// Non-positive sizes fall back to DefaultBatchSize.
func NewRecordPostgres(db *sql.DB, batchSize int) *RecordPostgres {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if limit := maxParams / len(insertColumns); batchSize > limit {
		batchSize = limit
	}
	return &RecordPostgres{db: db, batchSize: batchSize}
}

var _ repository.RecordRepository = (*RecordPostgres)(nil)

// InsertBatch writes records in one transaction using multi-row INSERTs.
// Any failure rolls back the whole batch.
func (r *RecordPostgres) InsertBatch(ctx context.Context, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	for start := 0; start < len(records); start += r.batchSize {
		end := min(start+r.batchSize, len(records))
		q, args := buildInsert(records[start:end])
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert rows %d-%d: %w", start, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func buildInsert(records []model.Record) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO public.documentos (")
	b.WriteString(strings.Join(insertColumns, ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(records)*len(insertColumns))
	for i, rec := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := range insertColumns {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", len(args)+j+1)
		}
		b.WriteByte(')')
		args = append(args,
			rec.SourceFilename,
			nullableDate(rec.AvailabilityDate),
			nullableString(rec.CaseNumber),
			nullableString(rec.Parties),
			nullableString(rec.Attorneys),
			nullableAmount(rec.PrincipalAmount),
			nullableAmount(rec.DefaultInterestAmount),
			nullableAmount(rec.AttorneyFeeAmount),
			rec.ParagraphText,
			rec.Counterparty,
			rec.Status,
		)
	}
	return b.String(), args
}

// FindByID fetches a single record. A missing row returns sql.ErrNoRows.
func (r *RecordPostgres) FindByID(ctx context.Context, id int64) (*model.Record, error) {
	q := `SELECT ` + selectColumns + ` FROM public.documentos WHERE id = $1`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns records matching filter, newest publication first, with the total count.
func (r *RecordPostgres) List(ctx context.Context, filter repository.RecordFilter, pq repository.PageQuery) (*repository.PageResult[model.Record], error) {
	where, args := buildWhere(filter)

	var total int
	qCount := `SELECT COUNT(*) FROM public.documentos` + where
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(`SELECT %s FROM public.documentos%s
		ORDER BY data_disponibilizacao DESC NULLS LAST, id DESC
		LIMIT $%d OFFSET $%d`, selectColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Record]{
		Items: items,
		Total: total,
	}, nil
}

func buildWhere(f repository.RecordFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.CaseNumber != "" {
		args = append(args, f.CaseNumber)
		conds = append(conds, fmt.Sprintf("processo = $%d", len(args)))
	}
	if f.AvailabilityDate != nil {
		args = append(args, *f.AvailabilityDate)
		conds = append(conds, fmt.Sprintf("data_disponibilizacao = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Party != "" {
		args = append(args, "%"+f.Party+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(autores ILIKE $%d OR advogados ILIKE $%d OR reu ILIKE $%d)", n, n, n))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*model.Record, error) {
	var (
		rec                       model.Record
		date                      sql.NullTime
		caseNumber, parties, advs sql.NullString
		principal, interest, fee  decimal.NullDecimal
	)
	if err := s.Scan(
		&rec.ID,
		&rec.SourceFilename,
		&date,
		&caseNumber,
		&parties,
		&advs,
		&principal,
		&interest,
		&fee,
		&rec.ParagraphText,
		&rec.Counterparty,
		&rec.Status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if date.Valid {
		d := date.Time
		rec.AvailabilityDate = &d
	}
	rec.CaseNumber = stringPtr(caseNumber)
	rec.Parties = stringPtr(parties)
	rec.Attorneys = stringPtr(advs)
	rec.PrincipalAmount = decimalPtr(principal)
	rec.DefaultInterestAmount = decimalPtr(interest)
	rec.AttorneyFeeAmount = decimalPtr(fee)
	return &rec, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// nullableAmount renders amounts with exactly two fractional digits for NUMERIC(15,2).
func nullableAmount(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.StringFixed(2)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func decimalPtr(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}
