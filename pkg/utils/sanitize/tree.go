package sanitize

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultMaxDepth bounds nesting of decoded request bodies.
const DefaultMaxDepth = 64

var (
	ErrMalformed     = goerr.New("malformed JSON body")
	ErrTooDeep       = goerr.New("JSON body nested too deeply")
	ErrBodyTooLarge  = goerr.New("request body too large")
	errUnexpectedEnd = errors.New("unexpected end of JSON input")
)

// Kind tags a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindObject
	KindArray
)

// Member is one key of an object in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON document as a tree. Objects keep their members in the
// order they appear in the input, duplicates included, so a scan sees every
// key the client sent.
type Value struct {
	Kind    Kind
	Members []Member
	Elems   []Value
	Scalar  any
}

// IsObject reports whether v is a JSON object.
func (v Value) IsObject() bool { return v.Kind == KindObject }

// Keys returns the object keys of v in document order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Parse decodes data into a tree. maxDepth <= 0 selects DefaultMaxDepth.
func Parse(data []byte, maxDepth int) (Value, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 1, maxDepth)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, goerr.Wrap(ErrMalformed, "trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, depth, maxDepth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errUnexpectedEnd
		}
		return Value{}, goerr.Wrap(ErrMalformed, err.Error())
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return Value{Kind: KindScalar, Scalar: tok}, nil
	}
	if depth > maxDepth {
		return Value{}, goerr.Wrap(ErrTooDeep, "nesting limit exceeded", goerr.V("max_depth", maxDepth))
	}

	switch delim {
	case '{':
		v := Value{Kind: KindObject}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return Value{}, goerr.Wrap(ErrMalformed, err.Error())
			}
			key, ok := keyTok.(string)
			if !ok {
				return Value{}, goerr.Wrap(ErrMalformed, "object key is not a string")
			}
			child, err := decodeValue(dec, depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			v.Members = append(v.Members, Member{Key: key, Value: child})
		}
		if _, err := dec.Token(); err != nil {
			return Value{}, goerr.Wrap(ErrMalformed, err.Error())
		}
		return v, nil

	case '[':
		v := Value{Kind: KindArray}
		for dec.More() {
			child, err := decodeValue(dec, depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			v.Elems = append(v.Elems, child)
		}
		if _, err := dec.Token(); err != nil {
			return Value{}, goerr.Wrap(ErrMalformed, err.Error())
		}
		return v, nil
	}

	return Value{}, goerr.Wrap(ErrMalformed, "unexpected delimiter", goerr.V("delim", delim.String()))
}
