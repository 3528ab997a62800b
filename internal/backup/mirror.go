// Package backup mirrors committed registrations into Redis as JSON
// documents. The mirror is advisory: the primary store stays the single
// source of truth, writes here are best-effort, and nothing in the
// service ever reads the mirrored documents back.
package backup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/onamfest/house-registration/internal/model"
)

// backupSource tags every mirrored document with its provenance so the
// collection can be told apart from documents written by other tools.
const backupSource = "primary_sync"

// document is the shape of one mirrored registration. CreatedAt records
// when the mirror write happened, not the primary store's timestamp.
type document struct {
	Name              string    `json:"name"`
	CollegeID         string    `json:"college_id"`
	House             string    `json:"house"`
	Class             string    `json:"class"`
	RegistrationBatch string    `json:"registration_batch"`
	CreatedAt         time.Time `json:"created_at"`
	BackupSource      string    `json:"backup_source"`
}

// Mirror writes registration batches to Redis.
type Mirror struct {
	client *redis.Client
}

// NewMirror returns a Mirror over the given client, which must be non-nil;
// when Redis is unavailable callers should not construct a Mirror at all.
func NewMirror(client *redis.Client) *Mirror {
	if client == nil {
		panic("nil redis client passed to NewMirror")
	}
	return &Mirror{client: client}
}

// MirrorBatch stores one document per registration under
// registrations:<batch>:<college_id>, all in a single pipeline round
// trip. The caller treats any error as non-fatal.
func (m *Mirror) MirrorBatch(ctx context.Context, regs []model.Registration) error {
	if len(regs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	pipe := m.client.Pipeline()
	for _, reg := range regs {
		doc := document{
			Name:              reg.Name,
			CollegeID:         reg.CollegeID,
			House:             reg.House,
			Class:             reg.Class,
			RegistrationBatch: reg.RegistrationBatch,
			CreatedAt:         now,
			BackupSource:      backupSource,
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		pipe.Set(ctx, "registrations:"+reg.RegistrationBatch+":"+reg.CollegeID, body, 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}
