package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/storage"
)

// UploadRepository implements storage.UploadRepository for BadgerDB.
type UploadRepository struct {
	backend *Backend
}

var _ storage.UploadRepository = (*UploadRepository)(nil)

// NewUploadRepository creates a new UploadRepository.
func NewUploadRepository(backend *Backend) (*UploadRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &UploadRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *UploadRepository) Close() error {
	return nil
}

// UpsertUpload inserts or replaces an upload record keyed by its Id.
func (r *UploadRepository) UpsertUpload(ctx context.Context, record *core.UploadRecord) (*core.UploadRecord, error) {
	if err := core.ValidateUploadRecord(record); err != nil {
		return nil, err
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeUploadKey(record.Id)

		// Replacing a record whose timestamp changed would leave a stale
		// conversation index entry, so drop the old one first.
		old, err := r.readUploadRecord(tx, key)
		if err != nil {
			return err
		}
		if old != nil && !old.CreatedAt.Equal(record.CreatedAt) {
			oldConvKey := makeUploadConvKey(old.ConversationId, old.CreatedAt, old.Id)
			if err := tx.Delete(oldConvKey); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalUploadRecord(record)); err != nil {
			return err
		}

		convKey := makeUploadConvKey(record.ConversationId, record.CreatedAt, record.Id)
		if err := tx.Set(convKey, []byte(record.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetUpload retrieves a single upload record by Id.
func (r *UploadRepository) GetUpload(ctx context.Context, id string) (*core.UploadRecord, error) {
	var record *core.UploadRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = r.readUploadRecord(tx, makeUploadKey(id))
		return err
	}, false)

	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, storage.ErrNotFound
	}
	return record, nil
}

// ListUploads retrieves the upload records for a conversation in creation
// order. Soft-deleted records are excluded.
func (r *UploadRepository) ListUploads(ctx context.Context, conversationId string) ([]*core.UploadRecord, error) {
	var records []*core.UploadRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialUploadConvKey(conversationId)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id string
			err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			record, err := r.readUploadRecord(tx, makeUploadKey(id))
			if err != nil {
				return err
			}
			if record == nil || record.IsDeleted {
				continue
			}
			records = append(records, record)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// SoftDeleteUpload marks an upload record as deleted without removing it.
func (r *UploadRepository) SoftDeleteUpload(ctx context.Context, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeUploadKey(id)

		record, err := r.readUploadRecord(tx, key)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}

		record.IsDeleted = true
		if err := tx.Set(key, storage.MarshalUploadRecord(record)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// readUploadRecord reads and unmarshals a record, returning nil if absent.
func (r *UploadRepository) readUploadRecord(tx *badger.Txn, key []byte) (*core.UploadRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.UploadRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalUploadRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
