package graph

// Update is a partial state update returned by a node. Each key is inserted
// into (or overwrites) the corresponding field of the state; fields not named
// in the update are left untouched. There is no deletion: the state is
// strictly additive across a run.
type Update map[string]any

// State is the shared key-value record accumulated across a run. Fields are
// written exclusively by the executor merging node updates; nodes read the
// fields they need by name and ignore the rest.
//
// A State is owned by a single run and is not safe for concurrent use. The
// executor never shares one State between runs, so no locking is needed.
type State struct {
	data map[string]any
}

// NewState creates a State holding a copy of the initial fields. A nil
// initial map yields an empty state.
func NewState(initial map[string]any) *State {
	data := make(map[string]any, len(initial))
	for key, value := range initial {
		data[key] = value
	}
	return &State{data: data}
}

// Get retrieves a field by name. The second return value reports whether the
// field has been written.
func (state *State) Get(key string) (any, bool) {
	value, exists := state.data[key]
	return value, exists
}

// String retrieves a field by name as a string. It returns false when the
// field is absent or holds a non-string value.
func (state *State) String(key string) (string, bool) {
	value, exists := state.data[key]
	if !exists {
		return "", false
	}
	text, isString := value.(string)
	return text, isString
}

// Merge applies a partial update: every key in the update is inserted or
// overwritten. Keys not present in the update are left untouched.
func (state *State) Merge(update Update) {
	for key, value := range update {
		state.data[key] = value
	}
}

// Len returns the number of fields currently held.
func (state *State) Len() int {
	return len(state.data)
}

// Map returns a copy of all fields. The returned map is safe to modify
// without affecting the state.
func (state *State) Map() map[string]any {
	dataCopy := make(map[string]any, len(state.data))
	for key, value := range state.data {
		dataCopy[key] = value
	}
	return dataCopy
}

// snapshot returns an independent copy of the state. Run results are
// snapshots so callers never hold a live reference to executor internals.
func (state *State) snapshot() *State {
	return NewState(state.data)
}

// keys returns the field names currently held, for logging.
func (state *State) keys() []string {
	names := make([]string, 0, len(state.data))
	for key := range state.data {
		names = append(names, key)
	}
	return names
}
