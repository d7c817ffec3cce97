// Package archive keeps a local snapshot of every person absorbed by an
// identity merge. Merges are destructive (the source person row is deleted),
// so the engine writes the pre-merge state here before it starts, keyed by the
// merge-log id.
package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"labman/schema"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const mergeBucket = "merges"

// Snapshot is the state of a source person immediately before a merge.
type Snapshot struct {
	MergeId  uuid.UUID
	TargetId uint

	Person      schema.Person
	Authorships []schema.Authorship
	Memberships []schema.Membership

	ArchivedAt time.Time
}

type MergeArchive struct {
	db     *bbolt.DB
	logger *slog.Logger
}

func Open(path string) (*MergeArchive, error) {
	logger := slog.With("archive", path)

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 20 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening merge archive: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(mergeBucket))
		return err
	}); err != nil {
		return nil, fmt.Errorf("error creating merge archive bucket: %w", err)
	}

	logger.Info("merge archive initialized")

	return &MergeArchive{db: db, logger: logger}, nil
}

func (a *MergeArchive) Close() error {
	return a.db.Close()
}

func (a *MergeArchive) Put(snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error serializing merge snapshot: %w", err)
	}

	if err := a.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(mergeBucket)).Put([]byte(snapshot.MergeId.String()), data)
	}); err != nil {
		return fmt.Errorf("error writing merge snapshot: %w", err)
	}

	a.logger.Info("archived merge snapshot", "merge_id", snapshot.MergeId, "source_id", snapshot.Person.Id)

	return nil
}

// Get replies the snapshot for the given merge id, or nil if none is stored.
func (a *MergeArchive) Get(mergeId uuid.UUID) (*Snapshot, error) {
	var snapshot *Snapshot
	err := a.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(mergeBucket)).Get([]byte(mergeId.String()))
		if data != nil {
			snapshot = new(Snapshot)
			if err := json.Unmarshal(data, snapshot); err != nil {
				return fmt.Errorf("error parsing merge snapshot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
