package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"confstruct/internal/value"
)

// Location names BurntSushi/toml gives to local date/time values.
const (
	tomlLocalDatetime = "datetime-local"
	tomlLocalDate     = "date-local"
	tomlLocalTime     = "time-local"
)

func parseTOML(content []byte) (*value.Value, error) {
	var data map[string]any

	md, err := toml.Decode(string(content), &data)
	if err != nil {
		return nil, err
	}

	return convertTOML(data, "", keyOrder(md.Keys()))
}

// keyOrder maps a table path to its child keys in document order.
func keyOrder(keys []toml.Key) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]bool)

	for _, k := range keys {
		for i := range k {
			parent := pathKey(k[:i])

			child := parent + "\x00" + k[i]
			if seen[child] {
				continue
			}

			seen[child] = true
			order[parent] = append(order[parent], k[i])
		}
	}

	return order
}

func pathKey(k toml.Key) string {
	return strings.Join(k, "\x00")
}

func convertTOML(raw any, path string, order map[string][]string) (*value.Value, error) {
	switch v := raw.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(v), nil
	case int64:
		return value.Int(v), nil
	case float64:
		return value.Float(v), nil
	case string:
		return value.Str(v), nil
	case time.Time:
		return value.Str(formatTOMLTime(v)), nil
	case map[string]any:
		return convertTOMLTable(v, path, order)
	case []map[string]any:
		items := make([]*value.Value, 0, len(v))

		for _, table := range v {
			item, err := convertTOMLTable(table, path, order)
			if err != nil {
				return nil, err
			}

			items = append(items, item)
		}

		return value.Arr(items...), nil
	case []any:
		items := make([]*value.Value, 0, len(v))

		for _, elem := range v {
			item, err := convertTOML(elem, path, order)
			if err != nil {
				return nil, err
			}

			items = append(items, item)
		}

		return value.Arr(items...), nil
	default:
		return nil, fmt.Errorf("unsupported TOML value %T at %q", raw, strings.ReplaceAll(path, "\x00", "."))
	}
}

func convertTOMLTable(table map[string]any, path string, order map[string][]string) (*value.Value, error) {
	obj := value.NewObject()

	for _, key := range orderedKeys(table, order[path]) {
		childPath := key
		if path != "" {
			childPath = path + "\x00" + key
		}

		child, err := convertTOML(table[key], childPath, order)
		if err != nil {
			return nil, err
		}

		obj.Set(key, child)
	}

	return value.Obj(obj), nil
}

// orderedKeys returns the keys of table in document order. Keys the
// metadata does not know about follow in sorted order.
func orderedKeys(table map[string]any, known []string) []string {
	keys := make([]string, 0, len(table))
	used := make(map[string]bool, len(table))

	for _, k := range known {
		if _, ok := table[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}

	var rest []string

	for k := range table {
		if !used[k] {
			rest = append(rest, k)
		}
	}

	sort.Strings(rest)

	return append(keys, rest...)
}

func formatTOMLTime(t time.Time) string {
	switch t.Location().String() {
	case tomlLocalDate:
		return t.Format("2006-01-02")
	case tomlLocalTime:
		return t.Format("15:04:05.999999999")
	case tomlLocalDatetime:
		return t.Format("2006-01-02T15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}
