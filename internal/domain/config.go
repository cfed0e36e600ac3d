package domain

// KeyPrefix is the default Redis key prefix for record hashes and FT indexes.
const KeyPrefix = "docq:"

// QueryConfig holds store-side defaults shared by every collection handle.
type QueryConfig struct {
	KeyPrefix            string
	MaxResults           int
	FullTextSearchFields []string
}

// DefaultQueryConfig returns defaults for a notes-style corpus (title + body search).
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		KeyPrefix:            KeyPrefix,
		MaxResults:           10000,
		FullTextSearchFields: []string{"title", "text"},
	}
}

// IndexName returns the FT index name for a collection.
func (c QueryConfig) IndexName(collection string) string {
	return c.KeyPrefix + collection + ":idx"
}

// RecordPrefix returns the key prefix under which a collection's records live.
func (c QueryConfig) RecordPrefix(collection string) string {
	return c.KeyPrefix + collection + ":"
}
