package chi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/docq/internal/domain"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
	queryuc "github.com/kailas-cloud/docq/internal/usecase/query"
)

// recordParams are the query parameters shared by record routes.
type recordParams struct {
	Fields []string
	Sort   *string
	Order  *string
	Where  []string
	Q      *string
	Field  *string
	Limit  *string
	Skip   *string
	Before *string
	After  *string
}

func bindRecordParams(r *http.Request) (*recordParams, error) {
	q := r.URL.Query()
	var p recordParams
	binds := []struct {
		name    string
		explode bool
		dest    any
	}{
		{"fields", false, &p.Fields},
		{"sort", true, &p.Sort},
		{"order", true, &p.Order},
		{"where", true, &p.Where},
		{"q", true, &p.Q},
		{"field", true, &p.Field},
		{"limit", true, &p.Limit},
		{"skip", true, &p.Skip},
		{"before", true, &p.Before},
		{"after", true, &p.After},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", b.explode, false, b.name, q, b.dest); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", b.name, err)
		}
	}
	return &p, nil
}

// request converts bound parameters into a use case request.
// slug is empty for plain listings.
func (p *recordParams) request(slug string) (*queryuc.Request, error) {
	req := &queryuc.Request{
		Fields:      p.Fields,
		SortField:   deref(p.Sort),
		SortOrder:   deref(p.Order),
		Search:      deref(p.Q),
		SearchField: deref(p.Field),
		Limit:       deref(p.Limit),
		Skip:        deref(p.Skip),
	}

	for _, w := range p.Where {
		c, err := expr.ParseCondition(w)
		if err != nil {
			return nil, err
		}
		req.Where = append(req.Where, c)
	}

	if slug != "" {
		before, err := windowSide("before", p.Before)
		if err != nil {
			return nil, err
		}
		after, err := windowSide("after", p.After)
		if err != nil {
			return nil, err
		}
		req.Surround, req.Before, req.After = slug, before, after
	}
	return req, nil
}

// windowSide parses a surround bound; absent means one neighbor.
func windowSide(name string, v *string) (int, error) {
	if v == nil || *v == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil {
		return 0, domain.NewInvalidNumber(name, *v)
	}
	return n, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
