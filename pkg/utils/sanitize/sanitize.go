// Package sanitize rejects request bodies that carry prototype pollution keys
// or persistence layer operators before any handler sees them.
package sanitize

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultMaxBytes caps the request body read by a Guard.
const DefaultMaxBytes = 1 << 20

const (
	rejectionError       = "Solicitud inválida"
	msgForbiddenKeys     = "La petición contiene propiedades prohibidas"
	msgForbiddenOperator = "No se permiten operadores de MongoDB en actualizaciones directas"
)

var dangerousKeys = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// IsDangerousKey reports whether key is a prototype pollution vector.
func IsDangerousKey(key string) bool {
	_, ok := dangerousKeys[key]
	return ok
}

// FindDangerousKeys walks v depth first in document order and returns the
// dotted path of every dangerous key at any level. Array elements use their
// index as path segment. v is not modified.
func FindDangerousKeys(v Value) []string {
	var found []string
	walk(v, "", &found)
	return found
}

func walk(v Value, path string, found *[]string) {
	switch v.Kind {
	case KindObject:
		for _, m := range v.Members {
			full := join(path, m.Key)
			if IsDangerousKey(m.Key) {
				*found = append(*found, full)
			}
			walk(m.Value, full, found)
		}
	case KindArray:
		for i, e := range v.Elems {
			walk(e, join(path, strconv.Itoa(i)), found)
		}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// FindOperators returns the top level keys of v that start with '$'. Nested
// keys are not inspected.
func FindOperators(v Value) []string {
	if !v.IsObject() {
		return nil
	}
	var ops []string
	for _, m := range v.Members {
		if strings.HasPrefix(m.Key, "$") {
			ops = append(ops, m.Key)
		}
	}
	return ops
}

// Rejection is returned when a body fails a scan. It is rendered as a 400
// response with its own body shape rather than the error envelope.
type Rejection struct {
	Message    string
	Paths      []string
	Operators  []string
	production bool
}

func (x *Rejection) Error() string {
	if len(x.Operators) > 0 {
		return "request body contains operators: " + strings.Join(x.Operators, ", ")
	}
	return "request body contains forbidden keys: " + strings.Join(x.Paths, ", ")
}

// StatusCode is always 400.
func (x *Rejection) StatusCode() int { return http.StatusBadRequest }

// RejectionBody is the JSON payload of a rejection. Lists are only exposed
// outside production.
type RejectionBody struct {
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"`
	Operators []string `json:"operators,omitempty"`
}

// Body returns the response payload.
func (x *Rejection) Body() RejectionBody {
	body := RejectionBody{
		Error:   rejectionError,
		Message: x.Message,
	}
	if !x.production {
		body.Details = x.Paths
		body.Operators = x.Operators
	}
	return body
}

// Guard scans request bodies. The zero value is usable and behaves as in a
// non-production environment.
type Guard struct {
	Production bool
	MaxBytes   int64
	MaxDepth   int
}

// Body rejects requests whose body contains a dangerous key at any depth.
// The returned request carries a body that can be read again.
func (g Guard) Body(r *http.Request) (*http.Request, error) {
	r, v, err := g.read(r)
	if err != nil || v == nil {
		return r, err
	}
	if rej := g.checkKeys(*v); rej != nil {
		return r, rej
	}
	return r, nil
}

// Update runs Body and additionally rejects top level operator keys.
func (g Guard) Update(r *http.Request) (*http.Request, error) {
	r, v, err := g.read(r)
	if err != nil || v == nil {
		return r, err
	}
	if rej := g.checkKeys(*v); rej != nil {
		return r, rej
	}
	if ops := FindOperators(*v); len(ops) > 0 {
		return r, &Rejection{
			Message:    msgForbiddenOperator,
			Operators:  ops,
			production: g.Production,
		}
	}
	return r, nil
}

func (g Guard) checkKeys(v Value) *Rejection {
	paths := FindDangerousKeys(v)
	if len(paths) == 0 {
		return nil
	}
	return &Rejection{
		Message:    msgForbiddenKeys,
		Paths:      paths,
		production: g.Production,
	}
}

// read buffers the body, restores it on a shallow copy of r and parses it.
// A nil Value means there is nothing to scan.
func (g Guard) read(r *http.Request) (*http.Request, *Value, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return r, nil, nil
	}

	limit := g.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return r, nil, goerr.Wrap(err, "failed to read request body")
	}
	if err := r.Body.Close(); err != nil {
		return r, nil, goerr.Wrap(err, "failed to close request body")
	}
	if int64(len(raw)) > limit {
		return r, nil, goerr.Wrap(ErrBodyTooLarge, "body exceeds limit", goerr.V("limit", limit))
	}

	nr := r.WithContext(r.Context())
	nr.Body = io.NopCloser(bytes.NewReader(raw))
	nr.ContentLength = int64(len(raw))
	nr.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(raw)), nil
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nr, nil, nil
	}

	v, err := Parse(raw, g.MaxDepth)
	if err != nil {
		return nr, nil, err
	}
	return nr, &v, nil
}
