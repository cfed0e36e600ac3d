package docq

import (
	"fmt"

	"github.com/kailas-cloud/docq/internal/domain/cursor"
	"github.com/kailas-cloud/docq/internal/domain/record"
)

// Record is one stored document; a nil Record is a window placeholder.
type Record = record.Record

// Handle is the store cursor a Builder composes.
type Handle = cursor.Handle

// QueryStage transforms the handle before materialization.
type QueryStage func(Handle) Handle

// ResultStage transforms the materialized records.
type ResultStage func([]Record) []Record

// Phase orders result stages. Phases run in ascending order;
// stages inside a phase run in registration order.
type Phase int

const (
	// PhaseTransform holds caller-supplied postprocess stages.
	PhaseTransform Phase = iota
	// PhaseWindow holds surround stages. Records still carry their slug here.
	PhaseWindow
	// PhaseProject holds field projections.
	PhaseProject
	// PhaseStrip holds the body removal stage.
	PhaseStrip

	phaseCount
)

var phaseNames = [phaseCount]string{"transform", "window", "project", "strip"}

func (p Phase) String() string {
	if p < 0 || p >= phaseCount {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Config is the per-query input of a Builder.
type Config struct {
	Query       Handle
	Preprocess  []QueryStage
	Postprocess []ResultStage
}

// Options tune stage synthesis.
type Options struct {
	// FullTextSearchFields are scanned by SearchTerm.
	FullTextSearchFields []string
}

// Builder composes a deferred query. It is single-use and not safe for concurrent use.
type Builder struct {
	query   Handle
	pre     []QueryStage // constructor stages, in call order
	prepro  []QueryStage // Config.Preprocess, applied after pre
	post    [phaseCount][]ResultStage
	opts    Options
	err     error
	fetched bool
}

// New creates a Builder over cfg.Query. The body field is always stripped from results.
func New(cfg Config, opts Options) *Builder {
	b := &Builder{
		query:  cfg.Query,
		prepro: append([]QueryStage(nil), cfg.Preprocess...),
		opts:   opts,
	}
	b.post[PhaseTransform] = append([]ResultStage(nil), cfg.Postprocess...)
	b.post[PhaseStrip] = []ResultStage{stripText}
	return b
}

// Err returns the first error recorded by a stage constructor.
func (b *Builder) Err() error { return b.err }

// Stage registers an extra result stage in the given phase.
func (b *Builder) Stage(phase Phase, fn ResultStage) *Builder {
	if phase < 0 || phase >= phaseCount {
		b.fail(fmt.Errorf("register stage: unknown %s", phase))
		return b
	}
	if fn == nil {
		b.fail(fmt.Errorf("register stage: nil %s stage", phase))
		return b
	}
	b.post[phase] = append(b.post[phase], fn)
	return b
}

func (b *Builder) then(fn QueryStage) *Builder {
	b.pre = append(b.pre, fn)
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func stripText(rs []Record) []Record {
	return record.Map(rs, func(r Record) Record {
		return record.Omit(r, record.FieldText)
	})
}
