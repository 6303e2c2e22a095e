package activestandby

// WriterOptions configures a handle-variant Writer at construction.
type WriterOptions struct {
	// ReaderCapacityHint preallocates the reader-epoch slab for this many
	// readers. Zero (the default) lets the slab grow on demand.
	ReaderCapacityHint int
}

// WriterOption mutates WriterOptions. Follows the same functional-options
// shape as the teacher package's OptionFunc.
type WriterOption func(*WriterOptions)

// WithReaderCapacityHint preallocates room for n readers.
func WithReaderCapacityHint(n int) WriterOption {
	return func(o *WriterOptions) {
		o.ReaderCapacityHint = n
	}
}

func resolveWriterOptions(opts []WriterOption) WriterOptions {
	var o WriterOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// SharedOptions configures a shared-variant Shared at construction.
type SharedOptions struct{}

// SharedOption mutates SharedOptions. No shared-variant options exist yet;
// the type is kept so the constructor signatures can grow options without
// a breaking change, same rationale as WriterOption. There is deliberately
// no resolveSharedOptions: with zero fields on SharedOptions, resolving it
// would have nothing to do, so the constructors just accept and ignore
// SharedOption values until the first real option is added.
type SharedOption func(*SharedOptions)
