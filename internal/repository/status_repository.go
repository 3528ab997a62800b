package repository

import (
	"context"
	"database/sql"

	"github.com/onamfest/house-registration/internal/model"
)

// StatusRepo reads the house_registration_status aggregate. The table is
// maintained entirely by the database (count and completion flag per
// house); this repository only ever selects from it.
type StatusRepo struct {
	db *sql.DB
}

// NewStatusRepo returns a new StatusRepo bound to the given database.
func NewStatusRepo(db *sql.DB) *StatusRepo { return &StatusRepo{db: db} }

// FetchAll returns the aggregate state of all houses keyed by house name.
// A house that has no row yet is simply absent from the map; lookups
// default to zero participants and not completed.
func (r *StatusRepo) FetchAll(ctx context.Context) (map[string]model.HouseStatus, error) {
	const q = `SELECT house, participants_count, is_completed, completed_at
	           FROM house_registration_status
	           ORDER BY house ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	statuses := make(map[string]model.HouseStatus, len(model.Houses))
	for rows.Next() {
		var st model.HouseStatus
		var completedAt sql.NullTime
		if err := rows.Scan(&st.House, &st.ParticipantsCount, &st.IsCompleted, &completedAt); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			t := completedAt.Time.UTC()
			st.CompletedAt = &t
		}
		statuses[st.House] = st
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// FetchAllOrdered returns the same aggregate as FetchAll but as a slice
// in house display order, the shape the export summary consumes.
func (r *StatusRepo) FetchAllOrdered(ctx context.Context) ([]model.HouseStatus, error) {
	byHouse, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	ordered := make([]model.HouseStatus, 0, len(model.Houses))
	for _, h := range model.Houses {
		if st, ok := byHouse[h]; ok {
			ordered = append(ordered, st)
			continue
		}
		ordered = append(ordered, model.HouseStatus{House: h})
	}
	return ordered, nil
}
