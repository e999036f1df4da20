package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	uuid "github.com/satori/go.uuid"

	"xplain/internal/record"
	"xplain/internal/xerrors"
)

// Redis persists each node as a hash (xplain:node:<id>) and indexes
// each parent's children in a sorted set (xplain:children:<parent_id>)
// scored by child_index, so ReadTree can walk the closure in order
// without re-sorting. Write lands the whole batch through a single
// MULTI/EXEC pipeline for the all-or-nothing guarantee.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func nodeKey(id uuid.UUID) string     { return fmt.Sprintf("xplain:node:%s", id) }
func childrenKey(id uuid.UUID) string { return fmt.Sprintf("xplain:children:%s", id) }

func (r *Redis) Write(ctx context.Context, records []record.Record) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "store.redis.write")
	defer span.Finish()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, rec := range records {
			valueJSON, err := json.Marshal(rec.Value)
			if err != nil {
				return err
			}
			labelsJSON, err := json.Marshal(rec.Labels)
			if err != nil {
				return err
			}

			fields := map[string]interface{}{
				"name":        rec.Name,
				"named":       rec.Named,
				"value":       string(valueJSON),
				"operator":    rec.Operator,
				"labels":      string(labelsJSON),
				"has_parent":  rec.HasParent,
				"child_index": rec.ChildIndex,
			}
			if rec.HasParent {
				fields["parent_id"] = rec.ParentID.String()
			}
			pipe.HSet(ctx, nodeKey(rec.ID), fields)
			if rec.HasParent {
				pipe.ZAdd(ctx, childrenKey(rec.ParentID), redis.Z{
					Score:  float64(rec.ChildIndex),
					Member: rec.ID.String(),
				})
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "write tree to redis")
	}
	return nil
}

func (r *Redis) ReadTree(ctx context.Context, rootID uuid.UUID) ([]record.Record, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "store.redis.read_tree")
	defer span.Finish()

	var out []record.Record
	var walk func(id uuid.UUID) error
	walk = func(id uuid.UUID) error {
		fields, err := r.client.HGetAll(ctx, nodeKey(id)).Result()
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return xerrors.KeyNotFound.New(id)
		}
		rec, err := recordFromFields(id, fields)
		if err != nil {
			return err
		}
		out = append(out, rec)

		childIDs, err := r.client.ZRangeByScore(ctx, childrenKey(id), &redis.ZRangeBy{Min: "-inf", Max: "+inf"}).Result()
		if err != nil {
			return err
		}
		for _, childIDStr := range childIDs {
			childID, err := uuid.FromString(childIDStr)
			if err != nil {
				return err
			}
			if err := walk(childID); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(rootID); err != nil {
		return nil, err
	}
	return out, nil
}

func recordFromFields(id uuid.UUID, fields map[string]string) (record.Record, error) {
	var rec record.Record
	rec.ID = id
	rec.Name = fields["name"]
	rec.Named = fields["named"] == "1"
	rec.Operator = fields["operator"]
	rec.HasParent = fields["has_parent"] == "1"

	childIndex, err := strconv.Atoi(fields["child_index"])
	if err != nil {
		return record.Record{}, err
	}
	rec.ChildIndex = childIndex

	if rec.HasParent {
		parentID, err := uuid.FromString(fields["parent_id"])
		if err != nil {
			return record.Record{}, err
		}
		rec.ParentID = parentID
	}
	if err := json.Unmarshal([]byte(fields["value"]), &rec.Value); err != nil {
		return record.Record{}, err
	}
	if labels := fields["labels"]; labels != "" && labels != "null" {
		if err := json.Unmarshal([]byte(labels), &rec.Labels); err != nil {
			return record.Record{}, err
		}
	}
	return rec, nil
}
