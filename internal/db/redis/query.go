package redis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/docq/internal/db"
	"github.com/kailas-cloud/docq/internal/domain"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

const maxFuzziness = 3

// compileQuery AND-s predicates into one FT.SEARCH query string.
// ok is false when a predicate can never match (a full-text clause without terms).
func compileQuery(preds []expr.Predicate) (query string, ok bool, err error) {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		part, ok, err := compilePredicate(p)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, nil
		}
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "*", true, nil
	}
	return strings.Join(parts, " "), true, nil
}

func compilePredicate(p expr.Predicate) (string, bool, error) {
	switch p := p.(type) {
	case expr.Where:
		s, err := compileWhere(p)
		return s, true, err
	case expr.FullText:
		return compileFullText(p.Query)
	case expr.Raw:
		if strings.TrimSpace(string(p)) == "" {
			return "", true, nil
		}
		return "(" + string(p) + ")", true, nil
	default:
		return "", false, fmt.Errorf("redis: predicate %T: %w", p, domain.ErrUnsupportedPredicate)
	}
}

func compileWhere(w expr.Where) (string, error) {
	if w.IsEmpty() {
		return "", nil
	}

	var parts []string
	for _, c := range w.Must() {
		s, err := compileCondition(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	if should := w.Should(); len(should) > 0 {
		group := make([]string, 0, len(should))
		for _, c := range should {
			s, err := compileCondition(c)
			if err != nil {
				return "", err
			}
			group = append(group, s)
		}
		parts = append(parts, "("+strings.Join(group, " | ")+")")
	}

	for _, c := range w.MustNot() {
		s, err := compileCondition(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, "-"+s)
	}

	return strings.Join(parts, " "), nil
}

// compileCondition renders string and bool equality as a tag match, which the
// server rejects on TEXT fields.
func compileCondition(c expr.Condition) (string, error) {
	if err := checkField(c.Field()); err != nil {
		return "", err
	}
	if c.IsRange() {
		return numericFilter(c.Field(), *c.Range()), nil
	}
	switch v := c.Value().(type) {
	case string:
		return tagFilter(c.Field(), v), nil
	case bool:
		return tagFilter(c.Field(), strconv.FormatBool(v)), nil
	}
	n, ok := c.Number()
	if !ok {
		return "", fmt.Errorf("redis: field %q value %T: %w", c.Field(), c.Value(), domain.ErrUnsupportedPredicate)
	}
	f := formatNumber(n)
	return fmt.Sprintf("@%s:[%s %s]", c.Field(), f, f), nil
}

func tagFilter(field, value string) string {
	return fmt.Sprintf("@%s:{%s}", field, tagEscaper.Replace(value))
}

func numericFilter(field string, r expr.Range) string {
	minBound := "-inf"
	maxBound := "+inf"

	if r.GT() != nil {
		minBound = "(" + formatNumber(*r.GT())
	} else if r.GTE() != nil {
		minBound = formatNumber(*r.GTE())
	}

	if r.LT() != nil {
		maxBound = "(" + formatNumber(*r.LT())
	} else if r.LTE() != nil {
		maxBound = formatNumber(*r.LTE())
	}

	return fmt.Sprintf("@%s:[%s %s]", field, minBound, maxBound)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func compileFullText(q expr.Query) (string, bool, error) {
	switch q := q.(type) {
	case expr.Match:
		return compileMatch(q)
	case expr.Bool:
		clauses := make([]string, 0, len(q.Should))
		for _, m := range q.Should {
			s, ok, err := compileMatch(m)
			if err != nil {
				return "", false, err
			}
			if ok {
				clauses = append(clauses, s)
			}
		}
		if len(clauses) == 0 {
			return "", false, nil
		}
		if len(clauses) == 1 {
			return clauses[0], true, nil
		}
		return "(" + strings.Join(clauses, " | ") + ")", true, nil
	default:
		return "", false, fmt.Errorf("redis: full-text %T: %w", q, domain.ErrUnsupportedPredicate)
	}
}

// compileMatch renders one match clause. Fuzziness wraps each term in up to
// three '%' pairs; a trailing '*' on an extended clause becomes a prefix query.
// Prefix length has no FT.SEARCH counterpart and is not rendered.
func compileMatch(m expr.Match) (string, bool, error) {
	if m.Field != "" {
		if err := checkField(m.Field); err != nil {
			return "", false, err
		}
	}

	terms := m.Terms()
	if len(terms) == 0 {
		return "", false, nil
	}

	fuzz := strings.Repeat("%", min(max(m.Fuzziness, 0), maxFuzziness))
	rendered := make([]string, 0, len(terms))
	for _, t := range terms {
		if m.Extended && len(t) > 1 && strings.HasSuffix(t, "*") {
			rendered = append(rendered, escapeQuery(strings.TrimSuffix(t, "*"))+"*")
			continue
		}
		rendered = append(rendered, fuzz+escapeQuery(t)+fuzz)
	}

	sep := " | "
	if m.RequiresAll() || (m.MinimumShouldMatch > 1 && m.MinimumShouldMatch >= len(terms)) {
		sep = " "
	}
	body := strings.Join(rendered, sep)

	if m.Field == "" {
		return "(" + body + ")", true, nil
	}
	return fmt.Sprintf("@%s:(%s)", m.Field, body), true, nil
}

func checkField(name string) error {
	if !db.IsValidIdentifier(name) || strings.Contains(name, ":") {
		return fmt.Errorf("redis: field name %q: %w", name, domain.ErrUnsupportedPredicate)
	}
	return nil
}

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`,`, `\,`,
	`.`, `\.`,
)
