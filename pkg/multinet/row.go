package multinet

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is an open-schema record: table rows and node attributes. Keys keep the
// order the server sent them in. Values are whatever encoding/json produces
// for a JSON value: string, float64, bool, nil, map[string]any or []any.
type Row = orderedmap.OrderedMap[string, any]

// NewRow builds a Row from alternating key/value pairs.
func NewRow(kv ...any) *Row {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("multinet: NewRow called with odd number of arguments: %d", len(kv)))
	}
	row := orderedmap.New[string, any](len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("multinet: NewRow key %d is %T, not string", i/2, kv[i]))
		}
		row.Set(key, kv[i+1])
	}
	return row
}

// RowMap flattens a Row into a plain map. A nil row yields nil.
func RowMap(row *Row) map[string]any {
	if row == nil {
		return nil
	}
	m := make(map[string]any, row.Len())
	for pair := row.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

// RowKeys returns the column names of row in server order.
func RowKeys(row *Row) []string {
	if row == nil {
		return nil
	}
	keys := make([]string, 0, row.Len())
	for pair := row.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// DecodeRow decodes a single row into out, which must be a pointer to a struct
// or map. Struct fields are matched by their `mapstructure` tag, or by name.
// Numeric strings are converted to numeric fields as CSV uploads store every
// column as text.
func DecodeRow(row *Row, out any) error {
	dec, err := newRowDecoder(out)
	if err != nil {
		return err
	}
	return dec.Decode(RowMap(row))
}

// DecodeRows decodes rows into out, which must be a pointer to a slice.
func DecodeRows(rows []*Row, out any) error {
	maps := make([]map[string]any, len(rows))
	for i, row := range rows {
		maps[i] = RowMap(row)
	}

	dec, err := newRowDecoder(out)
	if err != nil {
		return err
	}
	return dec.Decode(maps)
}

func newRowDecoder(out any) (*mapstructure.Decoder, error) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create row decoder: %w", err)
	}
	return dec, nil
}
