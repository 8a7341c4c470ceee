package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/ports"
)

const (
	modulesTable = "content_modules"
	ledgerTable  = "completion_ledger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// OpenPostgres opens a pgx-backed *sql.DB and checks the connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PostgresStore upserts modules into the content_modules table.
type PostgresStore struct {
	db *sql.DB
}

var _ ports.ContentStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// StoreModules upserts all modules in one transaction.
func (s *PostgresStore) StoreModules(ctx context.Context, modules []domain.ContentModule) error {
	if s.db == nil || len(modules) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, module := range modules {
		query, args, err := upsertModuleQuery(module)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert module %s: %w", module.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit modules: %w", err)
	}
	return nil
}

func upsertModuleQuery(module domain.ContentModule) (string, []any, error) {
	body, err := json.Marshal(module)
	if err != nil {
		return "", nil, fmt.Errorf("marshal module %s: %w", module.ID, err)
	}
	query, args, err := psql.Insert(modulesTable).
		Columns("id", "slug", "type", "title", "company_slug", "role_slug", "is_premium", "display_order", "body").
		Values(module.ID, module.Slug, string(module.Type), module.Title, module.CompanySlug, module.RoleSlug,
			module.IsPremium, module.Order, string(body)).
		Suffix(`ON CONFLICT (id) DO UPDATE
              SET slug = EXCLUDED.slug,
                  type = EXCLUDED.type,
                  title = EXCLUDED.title,
                  company_slug = EXCLUDED.company_slug,
                  role_slug = EXCLUDED.role_slug,
                  is_premium = EXCLUDED.is_premium,
                  display_order = EXCLUDED.display_order,
                  body = EXCLUDED.body,
                  updated_at = NOW()`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert: %w", err)
	}
	return query, args, nil
}

// PostgresLedger keeps completion records in the completion_ledger table.
// The (company_slug, role_slug) primary key makes concurrent appends safe.
type PostgresLedger struct {
	db *sql.DB
}

var _ ports.CompletionLedger = (*PostgresLedger)(nil)

// NewPostgresLedger wires a sql.DB implementation.
func NewPostgresLedger(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Load returns every record ordered by completion time.
func (l *PostgresLedger) Load(ctx context.Context) ([]domain.CompletionRecord, error) {
	if l.db == nil {
		return []domain.CompletionRecord{}, nil
	}

	query, args, err := loadLedgerQuery()
	if err != nil {
		return nil, err
	}
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}

	records := []domain.CompletionRecord{}
	for rows.Next() {
		var r domain.CompletionRecord
		if err := rows.Scan(&r.CompanySlug, &r.RoleSlug, &r.CompletedAt, &r.ModuleID, &r.Worker); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		records = append(records, r)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return records, nil
}

// Append inserts the record, reporting domain.ErrAlreadyCompleted when the
// unit already has a row.
func (l *PostgresLedger) Append(ctx context.Context, record domain.CompletionRecord) error {
	if l.db == nil {
		return nil
	}

	query, args, err := appendLedgerQuery(record)
	if err != nil {
		return err
	}
	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ledger rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", record.Key(), domain.ErrAlreadyCompleted)
	}
	return nil
}

func loadLedgerQuery() (string, []any, error) {
	query, args, err := psql.Select("company_slug", "role_slug", "completed_at", "module_id", "worker").
		From(ledgerTable).
		OrderBy("completed_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build ledger select: %w", err)
	}
	return query, args, nil
}

func appendLedgerQuery(record domain.CompletionRecord) (string, []any, error) {
	query, args, err := psql.Insert(ledgerTable).
		Columns("company_slug", "role_slug", "completed_at", "module_id", "worker").
		Values(record.CompanySlug, record.RoleSlug, record.CompletedAt, record.ModuleID, record.Worker).
		Suffix("ON CONFLICT (company_slug, role_slug) DO NOTHING").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build ledger insert: %w", err)
	}
	return query, args, nil
}
