package store

import (
	"context"
	"encoding/json"

	"github.com/boltdb/bolt"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"xplain/internal/record"
	"xplain/internal/xerrors"
)

// Bolt persists each tree in its own bucket, named after the root's
// id, with one key per record keyed by the record's own id. A bucket
// is the natural atomicity boundary: Write commits every record in a
// single bolt transaction, so a batch either lands whole or not at
// all.
type Bolt struct {
	db *bolt.DB
}

func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt store at %s", path)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Close() error { return b.db.Close() }

func (b *Bolt) Write(ctx context.Context, records []record.Record) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "store.bolt.write")
	defer span.Finish()

	rootID, err := rootOf(records)
	if err != nil {
		return err
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(rootID.String()))
		if err != nil {
			return err
		}
		for _, r := range records {
			data, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(r.ID.String()), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "write tree %s to bolt", rootID)
	}
	return nil
}

func (b *Bolt) ReadTree(ctx context.Context, rootID uuid.UUID) ([]record.Record, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "store.bolt.read_tree")
	defer span.Finish()

	var out []record.Record
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(rootID.String()))
		if bucket == nil {
			return xerrors.KeyNotFound.New(rootID)
		}
		return bucket.ForEach(func(_, v []byte) error {
			var r record.Record
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			out = append(out, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func rootOf(records []record.Record) (uuid.UUID, error) {
	for _, r := range records {
		if !r.HasParent {
			return r.ID, nil
		}
	}
	return uuid.UUID{}, xerrors.IntegrityError.New("batch has no root record")
}
