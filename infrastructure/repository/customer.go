// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vfg2006/revenue-command-center/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-command-center/internal/domain"
)

const customersTable = "users"

var customerColumns = []string{
	"id",
	"name",
	"company",
	"industry",
	"plan",
	"status",
	"revenue",
	"usage_count",
	"usage_trend",
	"signup_date",
	"stack_llm",
	"stack_tts",
	"stack_telephony",
	"cost_per_min",
	"price_per_min",
	"is_whale",
}

// CreateCustomersTable é o DDL usado pelo seed. position preserva a ordem de inserção,
// que é a ordem natural das coortes sem ordenação própria.
const CreateCustomersTable = `CREATE TABLE IF NOT EXISTS users (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	company         TEXT NOT NULL DEFAULT '',
	industry        TEXT NOT NULL,
	plan            TEXT NOT NULL,
	status          TEXT,
	revenue         NUMERIC(12, 2) NOT NULL DEFAULT 0,
	usage_count     INTEGER NOT NULL DEFAULT 0,
	usage_trend     TEXT NOT NULL,
	signup_date     TIMESTAMPTZ,
	stack_llm       TEXT,
	stack_tts       TEXT,
	stack_telephony TEXT,
	cost_per_min    NUMERIC(8, 4) NOT NULL DEFAULT 0,
	price_per_min   NUMERIC(8, 4) NOT NULL DEFAULT 0,
	is_whale        BOOLEAN,
	position        BIGSERIAL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.CustomerRecord, error)
	ReplaceCustomers(ctx context.Context, records []domain.CustomerRecord) (int, error)
}

type customerRepository struct {
	conn postgres.Conn
}

func NewCustomerRepository(conn postgres.Conn) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func listCustomersQuery() (string, []interface{}, error) {
	return squirrel.
		Select(customerColumns...).
		From(customersTable).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func customerByIDQuery(id string) (string, []interface{}, error) {
	return squirrel.
		Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *customerRepository) ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error) {
	query, args, err := listCustomersQuery()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.CustomerRecord, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer clientes: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id string) (*domain.CustomerRecord, error) {
	query, args, err := customerByIDQuery(id)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	customer, err := scanCustomer(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	return &customer, nil
}

// ReplaceCustomers apaga a tabela e grava os registros com COPY em uma única transação
func (r *customerRepository) ReplaceCustomers(ctx context.Context, records []domain.CustomerRecord) (int, error) {
	inserted := 0

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteSQL, deleteArgs, err := squirrel.Delete(customersTable).PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("erro ao limpar clientes: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, pq.CopyIn(customersTable, customerColumns...))
		if err != nil {
			return fmt.Errorf("erro ao preparar COPY: %w", err)
		}
		defer stmt.Close()

		for _, record := range records {
			if _, err := stmt.ExecContext(ctx, customerValues(record)...); err != nil {
				return fmt.Errorf("erro ao copiar cliente %s: %w", record.ID, err)
			}
			inserted++
		}

		// Exec sem argumentos finaliza o COPY
		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("erro ao finalizar COPY: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (domain.CustomerRecord, error) {
	var (
		customer   domain.CustomerRecord
		status     sql.NullString
		signupDate sql.NullTime
		llm        sql.NullString
		tts        sql.NullString
		telephony  sql.NullString
		isWhale    sql.NullBool
	)

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Company,
		&customer.Industry,
		&customer.Plan,
		&status,
		&customer.Revenue,
		&customer.UsageCount,
		&customer.UsageTrend,
		&signupDate,
		&llm,
		&tts,
		&telephony,
		&customer.CostPerMin,
		&customer.PricePerMin,
		&isWhale,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customer, err
		}
		return customer, fmt.Errorf("erro ao ler cliente: %w", err)
	}

	customer.Status = domain.Status(status.String)
	if signupDate.Valid {
		customer.SignupDate = domain.NewTimestamp(signupDate.Time)
	}
	if llm.Valid && tts.Valid && telephony.Valid {
		customer.Stack = domain.Some(domain.StackConfig{
			LLM:       llm.String,
			TTS:       tts.String,
			Telephony: telephony.String,
		})
	}
	if isWhale.Valid {
		customer.IsWhale = domain.Some(isWhale.Bool)
	}

	return customer, nil
}

func customerValues(record domain.CustomerRecord) []any {
	var (
		status     sql.NullString
		signupDate sql.NullTime
		llm        sql.NullString
		tts        sql.NullString
		telephony  sql.NullString
		isWhale    sql.NullBool
	)

	if record.Status != "" {
		status = sql.NullString{String: string(record.Status), Valid: true}
	}
	if !record.SignupDate.IsZero() {
		signupDate = sql.NullTime{Time: record.SignupDate.Time, Valid: true}
	}
	if stack, ok := record.Stack.Get(); ok {
		llm = sql.NullString{String: stack.LLM, Valid: true}
		tts = sql.NullString{String: stack.TTS, Valid: true}
		telephony = sql.NullString{String: stack.Telephony, Valid: true}
	}
	if whale, ok := record.IsWhale.Get(); ok {
		isWhale = sql.NullBool{Bool: whale, Valid: true}
	}

	return []any{
		record.ID,
		record.Name,
		record.Company,
		string(record.Industry),
		string(record.Plan),
		status,
		record.Revenue,
		record.UsageCount,
		string(record.UsageTrend),
		signupDate,
		llm,
		tts,
		telephony,
		record.CostPerMin,
		record.PricePerMin,
		isWhale,
	}
}
