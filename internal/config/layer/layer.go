// Package layer provides priority-ordered configuration layers.
//
// A layer is a nested map of values from one Source. The source fixes the
// layer's name and priority; higher priority layers override lower ones
// when values are looked up or merged.
package layer

// Layer is the configuration read from one source.
type Layer struct {
	// Name identifies the layer, e.g. "defaults" or "modeline".
	Name string

	// Priority orders the merge: higher overrides lower.
	Priority int

	Source Source

	// Path is the file the layer was read from, if any.
	Path string

	// Data holds the values as a nested map.
	Data map[string]any

	// ReadOnly rejects writes through the manager.
	ReadOnly bool
}

// New creates the layer for source holding a copy of data.
func New(source Source, data map[string]any) *Layer {
	l := &Layer{
		Name:     source.String(),
		Source:   source,
		Priority: source.Priority(),
		Data:     cloneMap(data),
	}
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	return l
}

// Source indicates where a layer came from. A session sees three tiers:
// builtin defaults, user settings (files, environment and runtime changes)
// and modelines.
type Source uint8

const (
	// SourceBuiltin holds the registered defaults.
	SourceBuiltin Source = iota
	// SourceUserGlobal is $XDG_CONFIG_HOME/evil/config.toml.
	SourceUserGlobal
	// SourceWorkspace is .evil/config.toml in the workspace.
	SourceWorkspace
	// SourceEnv holds EVIL_* environment variables.
	SourceEnv
	// SourceRuntime holds values set while running, e.g. a gate toggle.
	SourceRuntime
	// SourceModeline holds settings read from a buffer's modelines.
	SourceModeline
)

// Layer priorities by source.
const (
	PriorityBuiltin    = 0
	PriorityUserGlobal = 100
	PriorityWorkspace  = 120
	PriorityEnv        = 140
	PriorityRuntime    = 160
	PriorityModeline   = 200
)

// Priority returns the merge priority of layers from s.
func (s Source) Priority() int {
	switch s {
	case SourceUserGlobal:
		return PriorityUserGlobal
	case SourceWorkspace:
		return PriorityWorkspace
	case SourceEnv:
		return PriorityEnv
	case SourceRuntime:
		return PriorityRuntime
	case SourceModeline:
		return PriorityModeline
	default:
		return PriorityBuiltin
	}
}

// String returns the name of the layer for s.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "defaults"
	case SourceUserGlobal:
		return "user"
	case SourceWorkspace:
		return "workspace"
	case SourceEnv:
		return "environment"
	case SourceRuntime:
		return "runtime"
	case SourceModeline:
		return "modeline"
	default:
		return "unknown"
	}
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return val
	}
}
