package redact

// maxDepth caps structural recursion. Runtime updates are finite JSON
// trees far shallower than this; a branch past the cap collapses to nil
// and is pruned away downstream.
const maxDepth = 64

// Sanitize walks an arbitrary JSON-like tree and returns an isomorphic
// copy with every media-named key reduced to its identifier pair and
// every scalar leaf bounded by opts.MaxLen. The input is never mutated.
func Sanitize(node any, opts Options) any {
	opts.compile()
	return walk(node, &opts, 0)
}

func walk(node any, opts *Options, depth int) any {
	if depth > maxDepth {
		return nil
	}
	switch x := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, v := range x {
			// Media keys short-circuit: reference only, no recursion
			// into the stripped subtree.
			if opts.isMedia(k) {
				if ref := FileRefs(v); ref != nil {
					out[k] = ref
				}
				continue
			}
			out[k] = walk(v, opts, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, v := range x {
			out[i] = walk(v, opts, depth+1)
		}
		return out
	default:
		return Value(x, opts.MaxLen)
	}
}
