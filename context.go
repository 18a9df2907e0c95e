package jsonish

// ParsingContext threads recursion depth and cycle detection through a
// single top-level Parse call. It is not safe for concurrent use; callers
// parsing concurrently should create one ParsingContext per goroutine
// (see SPEC_FULL.md concurrency section).
type ParsingContext struct {
	opts    *ParseOptions
	depth   int
	visited map[string]struct{}
}

// newParsingContext starts a fresh context for one top-level Parse call.
func newParsingContext(opts *ParseOptions) *ParsingContext {
	return &ParsingContext{
		opts:    opts,
		visited: make(map[string]struct{}),
	}
}

// enter records descent into one more level of coercion, returning an error
// if MaxDepth has been exceeded and a done func to pop the frame on return.
func (pc *ParsingContext) enter(shape SchemaShape, v *Value) (done func(), err error) {
	maxDepth := pc.opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	pc.depth++
	if pc.depth > maxDepth {
		pc.depth--
		return func() {}, errDepth("max_depth_exceeded", "exceeded max coercion depth of {max_depth}", map[string]any{
			"max_depth": maxDepth,
		})
	}

	key := visitKey(shape, v)
	if key != "" {
		if _, seen := pc.visited[key]; seen {
			pc.depth--
			return func() {}, errCycle("cycle_detected", "cycle detected while coercing a recursive schema")
		}
		pc.visited[key] = struct{}{}
		return func() {
			delete(pc.visited, key)
			pc.depth--
		}, nil
	}

	return func() { pc.depth-- }, nil
}

// visitKey derives the cycle-detection identity for a (schema, value) pair,
// preferring the schema's own Fingerprint extension when available.
func visitKey(shape SchemaShape, v *Value) string {
	if shape == nil || v == nil {
		return ""
	}
	schemaKey := ""
	if fp, ok := shape.(Fingerprint); ok {
		schemaKey = fp.SchemaFingerprint()
	}
	if schemaKey == "" {
		return ""
	}
	return schemaKey + "|" + v.fingerprint()
}
