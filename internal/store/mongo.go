package store

import (
	"context"
	"encoding/json"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"xplain/internal/record"
	"xplain/internal/xerrors"
)

// mongoRecord is record.Record's BSON wire shape. Value and Labels
// already carry their own JSON codecs, so they're stored as raw
// strings rather than re-taught to bson.
type mongoRecord struct {
	ID         string `bson:"_id"`
	RootID     string `bson:"root_id"`
	ParentID   string `bson:"parent_id,omitempty"`
	HasParent  bool   `bson:"has_parent"`
	ChildIndex int    `bson:"child_index"`
	Name       string `bson:"name"`
	Named      bool   `bson:"named"`
	Value      string `bson:"value"`
	Operator   string `bson:"operator"`
	Labels     string `bson:"labels,omitempty"`
}

// Mongo persists records as BSON documents in a single
// evaluated_expressions collection, keyed by _id = record id, with a
// root_id field for the tree-scoped lookup ReadTree needs. Write first
// rejects a batch reusing ids the collection already holds, then uses
// an ordered bulk insert and deletes everything it inserted if any
// document in the batch fails, since the driver has no multi-document
// transaction guarantee without a replica set.
type Mongo struct {
	collection *mongo.Collection
}

func NewMongo(collection *mongo.Collection) *Mongo {
	return &Mongo{collection: collection}
}

func (m *Mongo) Write(ctx context.Context, records []record.Record) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "store.mongo.write")
	defer span.Finish()

	rootID, err := rootOf(records)
	if err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(records))
	batchIDs := make([]string, 0, len(records))
	for _, r := range records {
		doc, err := toMongoRecord(rootID, r)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		batchIDs = append(batchIDs, doc.ID)
	}

	// Rejecting ids the collection already holds before inserting means any
	// document DeleteMany finds under batchIDs afterward was landed by this
	// call alone, so the rollback below can never erase a prior Write.
	existing, err := m.collection.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": batchIDs}})
	if err != nil {
		return err
	}
	if existing > 0 {
		return xerrors.IntegrityError.New("batch reuses ids already present in the store")
	}

	opts := options.InsertMany().SetOrdered(true)
	if _, err := m.collection.InsertMany(ctx, docs, opts); err != nil {
		// Roll back whatever landed before the failing document.
		_, _ = m.collection.DeleteMany(ctx, bson.M{
			"_id": bson.M{"$in": batchIDs},
		})
		return errors.Wrapf(err, "write tree %s to mongo", rootID)
	}
	return nil
}

func (m *Mongo) ReadTree(ctx context.Context, rootID uuid.UUID) ([]record.Record, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "store.mongo.read_tree")
	defer span.Finish()

	cursor, err := m.collection.Find(ctx, bson.M{"root_id": rootID.String()})
	if err != nil {
		return nil, errors.Wrapf(err, "read tree %s from mongo", rootID)
	}
	defer cursor.Close(ctx)

	var out []record.Record
	for cursor.Next(ctx) {
		var doc mongoRecord
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rec, err := fromMongoRecord(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, xerrors.KeyNotFound.New(rootID)
	}
	return out, nil
}

func toMongoRecord(rootID uuid.UUID, r record.Record) (mongoRecord, error) {
	valueJSON, err := json.Marshal(r.Value)
	if err != nil {
		return mongoRecord{}, err
	}
	labelsJSON, err := json.Marshal(r.Labels)
	if err != nil {
		return mongoRecord{}, err
	}
	doc := mongoRecord{
		ID:         r.ID.String(),
		RootID:     rootID.String(),
		HasParent:  r.HasParent,
		ChildIndex: r.ChildIndex,
		Name:       r.Name,
		Named:      r.Named,
		Value:      string(valueJSON),
		Operator:   r.Operator,
		Labels:     string(labelsJSON),
	}
	if r.HasParent {
		doc.ParentID = r.ParentID.String()
	}
	return doc, nil
}

func fromMongoRecord(doc mongoRecord) (record.Record, error) {
	id, err := uuid.FromString(doc.ID)
	if err != nil {
		return record.Record{}, err
	}
	rec := record.Record{
		ID:         id,
		HasParent:  doc.HasParent,
		ChildIndex: doc.ChildIndex,
		Name:       doc.Name,
		Named:      doc.Named,
		Operator:   doc.Operator,
	}
	if doc.HasParent {
		parentID, err := uuid.FromString(doc.ParentID)
		if err != nil {
			return record.Record{}, err
		}
		rec.ParentID = parentID
	}
	if err := json.Unmarshal([]byte(doc.Value), &rec.Value); err != nil {
		return record.Record{}, err
	}
	if doc.Labels != "" && doc.Labels != "null" {
		if err := json.Unmarshal([]byte(doc.Labels), &rec.Labels); err != nil {
			return record.Record{}, err
		}
	}
	return rec, nil
}
