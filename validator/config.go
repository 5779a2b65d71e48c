package validator

import (
	"errors"

	"go.uber.org/zap"

	"github.com/blockberries/timeoracle/identity"
	"github.com/blockberries/timeoracle/types"
)

// DefaultTokenCodeHash is the code hash of the simple UDT type script
// deployed on mainnet, referenced with HashTypeType.
var DefaultTokenCodeHash = types.Hash{
	0x5e, 0x7a, 0x36, 0xa7, 0x7e, 0x68, 0xee, 0xcc,
	0x01, 0x3d, 0xfa, 0x2f, 0xe6, 0xa2, 0x3f, 0x3b,
	0x6c, 0x34, 0x4b, 0x04, 0x00, 0x58, 0x08, 0x69,
	0x4a, 0xe6, 0xdd, 0x45, 0xee, 0xa4, 0xcf, 0xd5,
}

// Config holds the transition rule parameters.
type Config struct {
	// Minimum gap between consecutive timestamps, in milliseconds.
	MinUpdateInterval uint64
	// Exclusive upper bound on tokens minted by one update.
	MaxIssuance uint64
	// Token type script the oracle mints; its args are the oracle's
	// script hash.
	TokenCodeHash types.Hash
	TokenHashType types.HashType
}

// DefaultConfig returns the production parameters: one update per
// minute, fewer than one million tokens per update.
func DefaultConfig() Config {
	return Config{
		MinUpdateInterval: 60_000,
		MaxIssuance:       1_000_000,
		TokenCodeHash:     DefaultTokenCodeHash,
		TokenHashType:     types.HashTypeType,
	}
}

// Validate checks that the parameters describe a satisfiable rule set.
func (c Config) Validate() error {
	if c.MinUpdateInterval == 0 {
		return errors.New("validator: MinUpdateInterval must be positive")
	}
	if c.MaxIssuance < 2 {
		return errors.New("validator: MaxIssuance must allow at least one token")
	}
	if c.TokenCodeHash.IsZero() {
		return errors.New("validator: TokenCodeHash is required")
	}
	return nil
}

// Option configures a Validator.
type Option func(*Validator)

// WithConfig replaces the rule parameters.
func WithConfig(cfg Config) Option {
	return func(v *Validator) { v.cfg = cfg }
}

// WithHasher overrides the hash used for identities. Defaults to
// identity.Blake2b.
func WithHasher(h identity.Hasher) Option {
	return func(v *Validator) { v.hasher = h }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}
