package assembler

// Options controls the source dialect accepted by the assembler.
type Options struct {
	// InlineLabels allows an instruction on the same line as a label ("loop: dec r0").
	InlineLabels bool
	// AllowRedefine lets a later label declaration replace an earlier one.
	AllowRedefine bool
	// AlignedBase requires base addresses to be multiples of 4.
	AlignedBase bool
}

// DefaultOptions is the permissive dialect.
func DefaultOptions() Options {
	return Options{
		InlineLabels:  true,
		AllowRedefine: true,
	}
}

// Option changes one setting.
type Option func(*Options)

// WithStrict rejects inline labels, label redefinition and unaligned base addresses.
func WithStrict() Option {
	return func(o *Options) {
		o.InlineLabels = false
		o.AllowRedefine = false
		o.AlignedBase = true
	}
}

// WithInlineLabels sets Options.InlineLabels.
func WithInlineLabels(on bool) Option {
	return func(o *Options) { o.InlineLabels = on }
}

// WithRedefine sets Options.AllowRedefine.
func WithRedefine(on bool) Option {
	return func(o *Options) { o.AllowRedefine = on }
}

// WithAlignedBase sets Options.AlignedBase.
func WithAlignedBase(on bool) Option {
	return func(o *Options) { o.AlignedBase = on }
}
