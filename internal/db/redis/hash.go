package redis

import (
	"context"
	"errors"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docq/internal/db"
)

var errNoFields = errors.New("no fields to set")

// HSet writes fields into the hash at key.
func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return db.NewError(db.OpHSet, key, errNoFields)
	}
	if err := s.do(ctx, hsetCmd(s.b(), key, fields)).Error(); err != nil {
		return db.NewError(db.OpHSet, key, err)
	}
	return nil
}

// HSetMulti pipelines one HSET per item. The first failing item is reported;
// items before it may already be written.
func (s *Store) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if len(items) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, 0, len(items))
	for _, item := range items {
		if len(item.Fields) == 0 {
			return db.NewError(db.OpHSet, item.Key, errNoFields)
		}
		cmds = append(cmds, hsetCmd(s.b(), item.Key, item.Fields))
	}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return db.NewError(db.OpHSet, items[i].Key, err)
		}
	}
	return nil
}

func hsetCmd(b rueidis.Builder, key string, fields map[string]string) rueidis.Completed {
	cmd := b.Hset().Key(key).FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	return cmd.Build()
}

// HGetAll reads a whole hash. An empty reply means the key is absent.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := s.do(ctx, s.b().Hgetall().Key(key).Build()).AsStrMap()
	switch {
	case err != nil:
		return nil, db.NewError(db.OpHGetAll, key, err)
	case len(m) == 0:
		return nil, db.ErrKeyNotFound
	}
	return m, nil
}

// Del removes key; deleting an absent key is not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	if err := s.do(ctx, s.b().Del().Key(key).Build()).Error(); err != nil {
		return db.NewError(db.OpDel, key, err)
	}
	return nil
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.do(ctx, s.b().Exists().Key(key).Build()).AsInt64()
	if err != nil {
		return false, db.NewError(db.OpExists, key, err)
	}
	return n > 0, nil
}
