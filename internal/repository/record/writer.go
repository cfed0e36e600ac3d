package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/docq/internal/db"
	"github.com/kailas-cloud/docq/internal/domain"
	"github.com/kailas-cloud/docq/internal/domain/cursor"
	domrec "github.com/kailas-cloud/docq/internal/domain/record"
)

// store is the consumer interface for writers (ISP).
type store interface {
	searcher
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Repo stores records as hashes and hands out handles over their FT index.
type Repo struct {
	store store
	cfg   domain.QueryConfig
}

// New creates a record repository.
func New(s store, cfg domain.QueryConfig) *Repo {
	return &Repo{store: s, cfg: cfg}
}

// Handle returns a fresh handle over a collection.
func (r *Repo) Handle(collection string) cursor.Handle {
	return NewHandle(r.store, r.cfg.IndexName(collection), r.cfg.MaxResults)
}

// EnsureIndex creates the collection's FT index; an existing index is left as is.
func (r *Repo) EnsureIndex(ctx context.Context, collection string, schema domain.Schema) error {
	if err := schema.Validate(); err != nil {
		return fmt.Errorf("collection %s: %w", collection, err)
	}
	def, err := db.SchemaIndex(r.cfg.IndexName(collection), r.cfg.RecordPrefix(collection), schema).Build()
	if err != nil {
		return fmt.Errorf("index definition %s: %w", collection, err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", collection, err)
	}
	return nil
}

// Put stores rec under its slug. Store bookkeeping fields are not written.
func (r *Repo) Put(ctx context.Context, collection string, rec domrec.Record) error {
	key, fields, err := r.encode(collection, rec)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// PutMany stores records in one pipelined round-trip.
func (r *Repo) PutMany(ctx context.Context, collection string, recs []domrec.Record) error {
	items := make([]db.HashSetItem, 0, len(recs))
	for _, rec := range recs {
		key, fields, err := r.encode(collection, rec)
		if err != nil {
			return err
		}
		items = append(items, db.HashSetItem{Key: key, Fields: fields})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset %d records in %s: %w", len(items), collection, err)
	}
	return nil
}

// Get reads one record by slug. The record carries its store key under
// FieldKey, like fetched records do.
func (r *Repo) Get(ctx context.Context, collection, slug string) (domrec.Record, error) {
	key := r.cfg.RecordPrefix(collection) + slug
	fields, err := r.store.HGetAll(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("record %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return toRecord(db.SearchEntry{Key: key, Fields: fields}, false), nil
}

// Delete removes the record stored under slug.
func (r *Repo) Delete(ctx context.Context, collection, slug string) error {
	key := r.cfg.RecordPrefix(collection) + slug
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("exists %s: %w", key, err)
	}
	if !ok {
		return fmt.Errorf("record %s: %w", key, domain.ErrNotFound)
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (r *Repo) encode(collection string, rec domrec.Record) (string, map[string]string, error) {
	slug := domrec.Slug(rec)
	if slug == "" {
		return "", nil, fmt.Errorf("record without %s: %w", domrec.FieldSlug, domain.ErrInvalidRecord)
	}
	fields := make(map[string]string, len(rec))
	for k, v := range rec {
		if v == nil || strings.HasPrefix(k, domrec.MetaPrefix) {
			continue
		}
		s, err := encodeValue(v)
		if err != nil {
			return "", nil, fmt.Errorf("record %s field %s: %w: %w", slug, k, domain.ErrInvalidRecord, err)
		}
		fields[k] = s
	}
	return r.cfg.RecordPrefix(collection) + slug, fields, nil
}

func encodeValue(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case json.Number:
		return x.String(), nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
