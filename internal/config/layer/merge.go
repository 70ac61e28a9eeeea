package layer

import (
	"cmp"
	"reflect"
	"slices"
	"strings"
)

// DeepMerge merges src into dst and returns dst. Nested maps merge
// recursively; any other value in src replaces the one in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for k, v := range src {
		if sm, ok := v.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				dst[k] = DeepMerge(dm, sm)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
	return dst
}

// GetByPath looks up a dotted path such as "evil.initial-mode".
func GetByPath(data map[string]any, path string) (any, bool) {
	var cur any = data
	for part := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetByPath stores value at a dotted path, creating intermediate maps.
func SetByPath(data map[string]any, path string, value any) {
	if data == nil {
		return
	}
	parent, leaf := walk(data, path, true)
	parent[leaf] = value
}

// DeleteByPath removes the value at a dotted path and reports whether it
// existed.
func DeleteByPath(data map[string]any, path string) bool {
	if data == nil {
		return false
	}
	parent, leaf := walk(data, path, false)
	if parent == nil {
		return false
	}
	if _, ok := parent[leaf]; !ok {
		return false
	}
	delete(parent, leaf)
	return true
}

// walk returns the map holding the last element of path. With create set,
// missing intermediate maps are added; otherwise a missing one yields nil.
func walk(data map[string]any, path string, create bool) (map[string]any, string) {
	parts := strings.Split(path, ".")
	cur := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			if !create {
				return nil, ""
			}
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	return cur, parts[len(parts)-1]
}

// Flatten returns the leaf values of data keyed by dotted path.
func Flatten(data map[string]any) map[string]any {
	out := make(map[string]any)
	var visit func(prefix string, m map[string]any)
	visit = func(prefix string, m map[string]any) {
		for k, v := range m {
			if prefix != "" {
				k = prefix + "." + k
			}
			if nested, ok := v.(map[string]any); ok {
				visit(k, nested)
				continue
			}
			out[k] = v
		}
	}
	visit("", data)
	return out
}

// DeltaKind classifies a difference between two configurations.
type DeltaKind uint8

const (
	Added DeltaKind = iota
	Modified
	Removed
)

// Delta is one leaf path that differs between two configurations.
type Delta struct {
	Path string
	Kind DeltaKind
}

// Diff lists the leaf paths that differ from old to next, sorted by path.
func Diff(old, next map[string]any) []Delta {
	before, after := Flatten(old), Flatten(next)

	var deltas []Delta
	for path, v := range after {
		prev, ok := before[path]
		switch {
		case !ok:
			deltas = append(deltas, Delta{Path: path, Kind: Added})
		case !reflect.DeepEqual(prev, v):
			deltas = append(deltas, Delta{Path: path, Kind: Modified})
		}
	}
	for path := range before {
		if _, ok := after[path]; !ok {
			deltas = append(deltas, Delta{Path: path, Kind: Removed})
		}
	}
	slices.SortFunc(deltas, func(a, b Delta) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return deltas
}
