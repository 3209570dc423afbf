// Package prune collapses a JSON-like tree to its minimal canonical
// form: no nils, no empty maps, no empty slices at any depth. Pruning
// is idempotent and is the last step before a record leaves the engine.
package prune

// Prune returns a copy of node with absent values removed bottom-up.
// A map whose every value pruned away becomes nil itself, and likewise
// for slices, so empty branches collapse upward. Scalars pass through.
// A nil return means the whole position should be omitted.
func Prune(node any) any {
	switch x := node.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, v := range x {
			if pv := Prune(v); pv != nil {
				out[k] = pv
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, 0, len(x))
		for _, v := range x {
			if pv := Prune(v); pv != nil {
				out = append(out, pv)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return node
	}
}

// Record prunes a composed record in place of the map form the engine
// emits. A record that prunes to nothing comes back as an empty map so
// callers always hold a non-nil map.
func Record(rec map[string]any) map[string]any {
	pruned := Prune(rec)
	if pruned == nil {
		return map[string]any{}
	}
	return pruned.(map[string]any)
}
