package employee

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed employee store. The caller
// owns the connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Add inserts a new employee record.
func (s *PostgresStore) Add(e *Employee) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)
	`, e.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check employee existence: %w", err)
	}
	if exists {
		return fmt.Errorf("employee with ID %s already exists", e.ID)
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO employees (id, name, area, cargo, salario_bruto, data_de_admissao, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Name, e.Area, e.Cargo, e.SalarioBruto.String(),
		e.DataDeAdmissao, e.CreatedAt, e.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}

	return nil
}

// Get retrieves an employee by ID.
func (s *PostgresStore) Get(id string) (*Employee, error) {
	row := s.db.QueryRow(`
		SELECT id, name, area, cargo, salario_bruto, data_de_admissao, created_at, updated_at
		FROM employees
		WHERE id = $1
	`, id)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("employee %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// List returns all employees, oldest record first.
func (s *PostgresStore) List() ([]*Employee, error) {
	rows, err := s.db.Query(`
		SELECT id, name, area, cargo, salario_bruto, data_de_admissao, created_at, updated_at
		FROM employees
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var all []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		all = append(all, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return all, nil
}

// Update modifies an existing employee record.
func (s *PostgresStore) Update(e *Employee) error {
	e.UpdatedAt = time.Now()

	result, err := s.db.Exec(`
		UPDATE employees
		SET name = $1, area = $2, cargo = $3, salario_bruto = $4, data_de_admissao = $5, updated_at = $6
		WHERE id = $7
	`, e.Name, e.Area, e.Cargo, e.SalarioBruto.String(), e.DataDeAdmissao, e.UpdatedAt, e.ID)

	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("employee %s not found", e.ID)
	}

	return nil
}

// Delete removes an employee record.
func (s *PostgresStore) Delete(id string) error {
	result, err := s.db.Exec(`
		DELETE FROM employees
		WHERE id = $1
	`, id)

	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("employee %s not found", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEmployee reads one employee row. The numeric salary column is scanned
// as text and re-parsed so no float conversion touches the amount.
func scanEmployee(row rowScanner) (*Employee, error) {
	var e Employee
	var salary string

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Area,
		&e.Cargo,
		&salary,
		&e.DataDeAdmissao,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.SalarioBruto, err = decimal.NewFromString(salary)
	if err != nil {
		return nil, fmt.Errorf("invalid salario_bruto %q: %w", salary, err)
	}

	return &e, nil
}
