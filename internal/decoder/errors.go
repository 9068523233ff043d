package decoder

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownCode reports a provider code absent from one of the closed
	// lookup tables. The tables are authoritative: an unmapped code means the
	// feed vocabulary drifted, not that the value is new and harmless.
	ErrUnknownCode = errors.New("unknown feed code")

	// ErrUnsupportedMarketType reports an odds market outside both the
	// supported and the known-but-ignored sets.
	ErrUnsupportedMarketType = errors.New("unsupported market type")
)
