package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"confstruct/internal/errors"
	"confstruct/internal/value"
)

func parseJSON(content []byte) (*value.Value, error) {
	// The token walk below assumes well-formed input.
	if !json.Valid(content) {
		var discard any
		if err := json.Unmarshal(content, &discard); err != nil {
			return nil, err
		}

		return nil, errors.New("invalid JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	v, err := readJSON(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}

		return nil, errors.New("unexpected data after top-level value")
	}

	return v, nil
}

func readJSON(dec *json.Decoder) (*value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(t), nil
	case string:
		return value.Str(t), nil
	case json.Number:
		n, err := value.ParseNumber(string(t))
		if err != nil {
			return nil, errors.Wrapf(err, "number %s", t)
		}

		return value.Num(n), nil
	case float64:
		return value.Float(t), nil
	default:
		return nil, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}

func readJSONObject(dec *json.Decoder) (*value.Value, error) {
	obj := value.NewObject()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}

		child, err := readJSON(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", key)
		}

		obj.Set(key, child)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	return value.Obj(obj), nil
}

func readJSONArray(dec *json.Decoder) (*value.Value, error) {
	items := []*value.Value{}

	for dec.More() {
		child, err := readJSON(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", len(items))
		}

		items = append(items, child)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	return value.Arr(items...), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}

		return err
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}

	return nil
}
