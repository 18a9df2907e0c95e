package jsonish

// ParseOptions controls how tolerant the parser and coercer are when
// turning raw text into a Value and coercing it against a SchemaShape.
// It mirrors the schema package's Compiler: a plain struct of flags with
// sensible zero-value defaults, configured via functional options.
type ParseOptions struct {
	// AllowPartial enables the partial-fill strategy for container schemas
	// (spec §4.9): truncated input is auto-closed and unseen fields get
	// defaults.
	AllowPartial bool

	// AllowMalformed enables the tolerant state-machine parse strategy for
	// container schemas (spec §4.2).
	AllowMalformed bool

	// AllowMarkdownJSON permits extracting JSON from fenced code blocks
	// (spec §4.3).
	AllowMarkdownJSON bool

	// AllowAsString enables the final fallback that wraps the raw input as
	// a String Value and coerces it against the schema.
	AllowAsString bool

	// AllowFixes enables the dispatcher's fixing-layer strategy (spec §4.4);
	// when false the dispatcher goes from extraction straight to the
	// state-machine parse.
	AllowFixes bool

	// MaxDepth bounds coercion recursion (spec §3.3); 0 means DefaultMaxDepth.
	MaxDepth int
}

// DefaultMaxDepth is the recursion bound applied when ParseOptions.MaxDepth
// is left at its zero value.
const DefaultMaxDepth = 100

// Option configures a ParseOptions.
type Option func(*ParseOptions)

// DefaultOptions returns the baseline tolerant configuration: every
// recovery mechanism enabled, default recursion bound.
func DefaultOptions() *ParseOptions {
	return &ParseOptions{
		AllowPartial:      true,
		AllowMalformed:    true,
		AllowMarkdownJSON: true,
		AllowAsString:     true,
		AllowFixes:        true,
		MaxDepth:          DefaultMaxDepth,
	}
}

// NewOptions builds a ParseOptions starting from DefaultOptions and applying
// each Option in order.
func NewOptions(opts ...Option) *ParseOptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAllowPartial toggles the partial-fill strategy for truncated input.
func WithAllowPartial(allow bool) Option {
	return func(o *ParseOptions) { o.AllowPartial = allow }
}

// WithAllowMalformed toggles the state-machine parse strategy.
func WithAllowMalformed(allow bool) Option {
	return func(o *ParseOptions) { o.AllowMalformed = allow }
}

// WithAllowMarkdownJSON toggles fenced-code-block extraction.
func WithAllowMarkdownJSON(allow bool) Option {
	return func(o *ParseOptions) { o.AllowMarkdownJSON = allow }
}

// WithAllowAsString toggles the raw-string final fallback.
func WithAllowAsString(allow bool) Option {
	return func(o *ParseOptions) { o.AllowAsString = allow }
}

// WithAllowFixes toggles the fixing layer outright.
func WithAllowFixes(allow bool) Option {
	return func(o *ParseOptions) { o.AllowFixes = allow }
}

// WithMaxDepth overrides the recursion bound. A non-positive value is
// ignored and DefaultMaxDepth is kept.
func WithMaxDepth(depth int) Option {
	return func(o *ParseOptions) {
		if depth > 0 {
			o.MaxDepth = depth
		}
	}
}
