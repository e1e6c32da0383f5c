package csview

import (
	"github.com/hupe1980/csview/internal/mmap"
)

// AccessPattern hints to the kernel how a mapped region will be read.
type AccessPattern = mmap.AccessPattern

const (
	// AccessDefault applies no specific advice.
	AccessDefault = mmap.AccessDefault
	// AccessSequential expects a single forward pass (the scanner's
	// natural access pattern, and the default for Open).
	AccessSequential = mmap.AccessSequential
	// AccessRandom expects record-at-a-time access via an Index.
	AccessRandom = mmap.AccessRandom
	// AccessWillNeed asks the kernel to fault the region in eagerly.
	AccessWillNeed = mmap.AccessWillNeed
)

type options struct {
	comma    byte
	fieldCap int
	pattern  AccessPattern
	logger   *Logger
}

// Option configures scanner and document behavior.
type Option func(*options)

// WithComma configures the field delimiter. Default is ','.
func WithComma(c byte) Option {
	return func(o *options) {
		if c == 0 {
			c = ','
		}
		o.comma = c
	}
}

// WithFieldCapacity preallocates room for n field views per record.
//
// This is a performance hint only: it sizes internal scratch so records
// up to n fields wide never grow a slice mid-scan. It never changes
// observable parsing semantics.
func WithFieldCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.fieldCap = n
		}
	}
}

// WithAccessPattern overrides the kernel access hint applied when a file
// is mapped. Open defaults to AccessSequential.
func WithAccessPattern(p AccessPattern) Option {
	return func(o *options) {
		o.pattern = p
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		comma:    ',',
		fieldCap: 16,
		pattern:  AccessSequential,
		logger:   NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
