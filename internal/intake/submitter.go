package intake

import (
	"context"
	"log"

	"github.com/onamfest/house-registration/internal/model"
)

// PrimaryStore is the authoritative store for registrations. The bulk
// insert is treated as a single atomic unit; its error is the error of
// the whole commit.
type PrimaryStore interface {
	InsertBatch(ctx context.Context, regs []model.Registration) error
}

// BackupStore mirrors committed registrations into the secondary document
// store. Mirror writes are advisory and may lag or miss records.
type BackupStore interface {
	MirrorBatch(ctx context.Context, regs []model.Registration) error
}

// EventPublisher announces a committed batch so status readers re-fetch
// their snapshot.
type EventPublisher interface {
	PublishCommitted(ctx context.Context, house, batch string, count int) error
}

// DualWriteSubmitter commits a batch to the primary store and then, only
// on success, mirrors it to the backup store and publishes a commit
// event. The primary store is the single source of truth: mirror and
// publish failures are logged and never fail the commit, and neither is
// attempted before the primary insert has returned success. There is no
// compensating transaction.
type DualWriteSubmitter struct {
	Primary PrimaryStore
	Backup  BackupStore    // nil when the mirror is unavailable
	Events  EventPublisher // nil when the broker is unavailable
}

// NewDualWriteSubmitter constructs a submitter. Primary must be non-nil;
// Backup and Events may be nil and are then skipped.
func NewDualWriteSubmitter(primary PrimaryStore, backup BackupStore, events EventPublisher) *DualWriteSubmitter {
	if primary == nil {
		panic("nil primary store passed to NewDualWriteSubmitter")
	}
	return &DualWriteSubmitter{Primary: primary, Backup: backup, Events: events}
}

// Commit writes the batch. The returned error is always the primary
// store's: repository.ErrAlreadyRegistered for a unique-constraint
// collision, or the raw insert error otherwise.
func (s *DualWriteSubmitter) Commit(ctx context.Context, regs []model.Registration) error {
	if err := s.Primary.InsertBatch(ctx, regs); err != nil {
		return err
	}
	if s.Backup != nil {
		if err := s.Backup.MirrorBatch(ctx, regs); err != nil {
			log.Printf("submitter: backup mirror failed (non-critical): %v", err)
		}
	}
	if s.Events != nil && len(regs) > 0 {
		if err := s.Events.PublishCommitted(ctx, regs[0].House, regs[0].RegistrationBatch, len(regs)); err != nil {
			log.Printf("submitter: commit event publish failed (non-critical): %v", err)
		}
	}
	return nil
}
