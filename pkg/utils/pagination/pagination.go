// Package pagination turns page/limit query parameters into an offset/limit
// pair and shapes list results into the response envelope.
//
// Malformed input is never an error: it falls back to defaults and is
// clamped into range.
package pagination

import (
	"context"
	"math"
	"net/url"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// maxParsed bounds parsed integers so that skip cannot overflow.
	maxParsed = math.MaxInt32
)

// Config controls one pagination instance.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns the configuration used by list endpoints unless
// overridden.
func DefaultConfig() Config {
	return Config{DefaultLimit: DefaultLimit, MaxLimit: MaxLimit}
}

func (c Config) normalize() Config {
	if c.MaxLimit < 1 {
		c.MaxLimit = MaxLimit
	}
	if c.DefaultLimit < 1 {
		c.DefaultLimit = DefaultLimit
	}
	if c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = c.MaxLimit
	}
	return c
}

// Page is the normalized request. Page >= 1, 1 <= Limit <= MaxLimit and
// Skip = (Page-1)*Limit.
type Page struct {
	Page  int
	Limit int
	Skip  int
}

// Parse reads "page" and "limit" from query.
func Parse(query url.Values, cfg Config) Page {
	cfg = cfg.normalize()

	page, ok := parseInt(query.Get("page"))
	if !ok || page == 0 {
		page = DefaultPage
	}
	page = max(1, page)

	limit, ok := parseInt(query.Get("limit"))
	if !ok || limit == 0 {
		limit = cfg.DefaultLimit
	}
	limit = min(cfg.MaxLimit, max(1, limit))

	return Page{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// parseInt follows the permissive integer parsing browsers and Node apply
// to query strings: leading whitespace, an optional sign, then the longest
// run of decimal digits. Trailing garbage is ignored ("12abc" is 12). The
// result saturates at maxParsed.
func parseInt(s string) (int, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if n < maxParsed {
			n = n*10 + int(s[i]-'0')
			if n > maxParsed {
				n = maxParsed
			}
		}
		i++
	}
	if i == start {
		return 0, false
	}

	if neg {
		n = -n
	}
	return n, true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Meta is the pagination block of the envelope.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	TotalItems int  `json:"totalItems"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Envelope wraps one page of list results.
type Envelope[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// NewMeta computes the pagination block for totalItems matches.
func NewMeta(p Page, totalItems int) Meta {
	totalItems = max(0, totalItems)

	totalPages := 0
	if p.Limit > 0 {
		totalPages = (totalItems + p.Limit - 1) / p.Limit
	}

	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

// NewEnvelope builds the response for one page. The handler supplies data
// and the total number of matching items from its own query.
func NewEnvelope[T any](data []T, totalItems int, p Page) Envelope[T] {
	if data == nil {
		data = []T{}
	}
	return Envelope[T]{
		Data:       data,
		Pagination: NewMeta(p, totalItems),
	}
}

type ctxKey struct{}

// With returns a context carrying p.
func With(ctx context.Context, p Page) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// From returns the page stored in ctx.
func From(ctx context.Context) (Page, bool) {
	p, ok := ctx.Value(ctxKey{}).(Page)
	return p, ok
}
