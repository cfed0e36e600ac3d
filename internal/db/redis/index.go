package redis

import (
	"context"

	"github.com/kailas-cloud/docq/internal/db"
)

// CreateIndex creates an FT index over record hashes.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := def.CreateArgs()
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return db.NewError(db.OpCreateIndex, def.Name, err)
	}
	return nil
}

// DropIndex removes an FT index by name. Record hashes are kept.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	cmd := s.b().Arbitrary("FT.DROPINDEX").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isUnknownIndex(err) {
			return db.ErrIndexNotFound
		}
		return db.NewError(db.OpDropIndex, name, err)
	}
	return nil
}

// IndexExists probes the index via FT.INFO.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isUnknownIndex(err) {
			return false, nil
		}
		return false, db.NewError(db.OpIndexInfo, name, err)
	}
	return true, nil
}

// isUnknownIndex matches the missing-index replies of the query engine.
// Redis 8 answers "No such index", older modules "Unknown index name".
func isUnknownIndex(err error) bool {
	return isRedisErr(err, "no such index") || isRedisErr(err, "unknown index name")
}
