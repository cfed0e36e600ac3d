package query

import (
	"context"

	"github.com/kailas-cloud/docq"
)

// HandleFactory hands out a fresh store handle per collection.
type HandleFactory interface {
	Handle(collection string) docq.Handle
}

// RecordReader reads single records by slug. A HandleFactory that also
// implements it enables Service.Get.
type RecordReader interface {
	Get(ctx context.Context, collection, slug string) (docq.Record, error)
}
