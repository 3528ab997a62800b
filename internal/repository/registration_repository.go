package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/onamfest/house-registration/internal/model"
)

// RegistrationRepo provides insert and read operations for the
// registrations table. Rows are immutable once inserted: the service
// never updates or deletes a registration, so the repository exposes
// no such methods. All timestamp fields are stored in UTC.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// InsertBatch inserts all rows of one team submission in a single
// statement. Every record must already carry its house, class and
// registration_batch; id and created_at are generated by the database.
// A violation of the unique index on college_id is translated into
// ErrAlreadyRegistered so handlers can surface an actionable message.
// Passing an empty slice has no effect and returns nil.
func (r *RegistrationRepo) InsertBatch(ctx context.Context, regs []model.Registration) error {
	if len(regs) == 0 {
		return nil
	}
	query := `INSERT INTO registrations (name, college_id, house, class, registration_batch) VALUES `
	args := make([]interface{}, 0, len(regs)*5)
	for i, reg := range regs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, reg.Name, reg.CollegeID, reg.House, reg.Class, reg.RegistrationBatch)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		// MySQL reports duplicate-key violations as error 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

// ListAll returns every registration ordered by house and then creation
// time, the order the export artifacts present them in. When the table
// is empty an empty slice is returned, not an error; export callers
// decide how to treat the absence of data.
func (r *RegistrationRepo) ListAll(ctx context.Context) ([]model.Registration, error) {
	const q = `SELECT id, name, college_id, house, class, registration_batch, created_at
	           FROM registrations
	           ORDER BY house ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	regs := make([]model.Registration, 0)
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(
			&reg.ID, &reg.Name, &reg.CollegeID, &reg.House, &reg.Class,
			&reg.RegistrationBatch, &reg.CreatedAt,
		); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}
