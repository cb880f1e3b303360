package geddes

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/format"
	"github.com/arloliu/geddes/internal/options"
)

// DefaultMaxInputSize is the default limit on input and decompressed sizes.
const DefaultMaxInputSize int64 = 512 << 20 // 512MiB

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// Config holds the settings of a single read.
type Config struct {
	rawOrder     [2]format.Decoder
	maxInputSize int64
	logger       logrus.FieldLogger
}

// Option configures a read.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	c := &Config{
		rawOrder:     [2]format.Decoder{format.DecoderGSAS, format.DecoderBruker},
		maxInputSize: DefaultMaxInputSize,
		logger:       discardLogger,
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the combined settings after every option has been applied.
func (c *Config) Validate() error {
	for _, d := range c.rawOrder {
		if d != format.DecoderGSAS && d != format.DecoderBruker {
			return fmt.Errorf("%w: %s cannot decode raw files", errs.ErrInvalidOption, d)
		}
	}
	if c.rawOrder[0] == c.rawOrder[1] {
		return fmt.Errorf("%w: raw order lists %s twice", errs.ErrInvalidOption, c.rawOrder[0])
	}

	return nil
}

// RawOrder returns the decoders tried for .raw files, in order.
func (c *Config) RawOrder() (format.Decoder, format.Decoder) {
	return c.rawOrder[0], c.rawOrder[1]
}

// MaxInputSize returns the input size limit in bytes.
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// WithRawOrder sets the order in which .raw decoders are tried.
//
// The second decoder only runs when the first reports that its header
// convention is absent (errs.ErrHeaderNotFound). The default order is GSAS text
// first, then the Bruker binary reconstructor.
//
// Parameters:
//   - first: Decoder tried first, format.DecoderGSAS or format.DecoderBruker
//   - second: Fallback decoder, the other of the two
func WithRawOrder(first, second format.Decoder) Option {
	return options.NoError(func(c *Config) {
		c.rawOrder = [2]format.Decoder{first, second}
	})
}

// WithMaxInputSize limits the size of an input, and of the payload inside a
// compressed wrapper, to n bytes. Larger inputs fail with errs.ErrInputTooLarge.
func WithMaxInputSize(n int64) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max input size must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.maxInputSize = n

		return nil
	})
}

// WithLogger traces dispatch, raw fallback and Bruker reconstruction at debug level.
// A nil logger restores the default, which discards everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.NoError(func(c *Config) {
		c.logger = discardLogger
		if logger != nil {
			c.logger = logger
		}
	})
}
