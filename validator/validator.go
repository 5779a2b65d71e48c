// Package validator decides whether a transaction performs a legal
// transition of the time oracle.
//
// A transaction either creates the oracle (Initializing) or replaces
// the current oracle cell with its successor (Updating). The rules for
// each are evaluated in a fixed order and the first violation is the
// reported reason.
package validator

import (
	"bytes"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/blockberries/timeoracle"
	"github.com/blockberries/timeoracle/identity"
	"github.com/blockberries/timeoracle/scan"
	"github.com/blockberries/timeoracle/types"
)

// Validator evaluates oracle transitions. It holds no per-transaction
// state and is safe for concurrent use.
type Validator struct {
	cfg    Config
	hasher identity.Hasher
	log    *zap.Logger
}

// New creates a validator with DefaultConfig unless overridden.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		cfg:    DefaultConfig(),
		hasher: identity.Blake2b{},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.cfg.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Config returns the rule parameters in effect.
func (v *Validator) Config() Config { return v.cfg }

// Verify evaluates tx. It returns nil if the transition is legal and a
// *timeoracle.RejectError otherwise.
func (v *Validator) Verify(tx timeoracle.TxView) error {
	self, err := tx.Script()
	if err != nil {
		return v.reject(ModeInvalid, timeoracle.FromHostError(err))
	}
	inputs, err := scan.GroupTypes(tx, timeoracle.SourceGroupInput)
	if err != nil {
		return v.reject(ModeInvalid, err)
	}
	outputs, err := scan.GroupTypes(tx, timeoracle.SourceGroupOutput)
	if err != nil {
		return v.reject(ModeInvalid, err)
	}

	mode, err := Classify(len(inputs), len(outputs))
	if err != nil {
		return v.reject(mode, err)
	}
	v.log.Debug("oracle transition classified",
		zap.Stringer("mode", mode),
		zap.Int("group_inputs", len(inputs)),
	)

	switch mode {
	case ModeInitializing:
		err = v.verifyInitializing(tx, self, outputs[0])
	case ModeUpdating:
		err = v.verifyUpdating(tx, self, inputs[0], outputs[0])
	}
	if err != nil {
		return v.reject(mode, err)
	}
	return nil
}

// Check evaluates tx and reports the outcome as a verdict.
func (v *Validator) Check(tx timeoracle.TxView) types.Verdict {
	err := v.Verify(tx)
	if err == nil {
		return types.Verdict{}
	}
	reason := timeoracle.ReasonOf(err)
	if reason == 0 {
		reason = timeoracle.ReasonUnreachable
	}
	return types.Verdict{Code: uint32(reason), Info: err.Error()}
}

func (v *Validator) reject(mode Mode, err error) error {
	v.log.Debug("oracle transition rejected",
		zap.Stringer("mode", mode),
		zap.Stringer("reason", timeoracle.ReasonOf(err)),
		zap.Int8("code", int8(timeoracle.ReasonOf(err))),
		zap.Error(err),
	)
	return err
}

// verifyInitializing checks that the oracle's script args commit to the
// id derived from this transaction. Nothing else is checked at genesis.
func (v *Validator) verifyInitializing(tx timeoracle.TxView, self, output types.Script) error {
	index, err := locate(tx, output, timeoracle.SourceOutput)
	if err != nil {
		return err
	}
	first, err := tx.Input(0)
	if err != nil {
		return timeoracle.FromHostError(err)
	}

	want := identity.DeriveOracleID(v.hasher, first, uint64(index))
	if len(self.Args) < len(want) || !bytes.Equal(self.Args[:len(want)], want[:]) {
		return timeoracle.Reject(timeoracle.ReasonOracleIDMismatch,
			"args %x do not start with derived id %x", self.Args, want[:])
	}
	return nil
}

func (v *Validator) verifyUpdating(tx timeoracle.TxView, self, input, output types.Script) error {
	prevIndex, err := locate(tx, input, timeoracle.SourceInput)
	if err != nil {
		return err
	}
	postIndex, err := locate(tx, output, timeoracle.SourceOutput)
	if err != nil {
		return err
	}
	prev, err := loadRecord(tx, prevIndex, timeoracle.SourceInput)
	if err != nil {
		return err
	}
	post, err := loadRecord(tx, postIndex, timeoracle.SourceOutput)
	if err != nil {
		return err
	}

	if post.OracleID != prev.OracleID {
		return timeoracle.Reject(timeoracle.ReasonOracleIDMismatch,
			"oracle id changed from %s to %s", prev.OracleID, post.OracleID)
	}

	if post.LastUpdated <= prev.LastUpdated || post.LastUpdated-prev.LastUpdated < v.cfg.MinUpdateInterval {
		return timeoracle.Reject(timeoracle.ReasonUpdateTooSoon,
			"timestamp %d follows %d, need a gap of %dms", post.LastUpdated, prev.LastUpdated, v.cfg.MinUpdateInterval)
	}

	anchored, err := scan.HeaderDepHasTimestamp(tx, post.LastUpdated)
	if err != nil {
		return err
	}
	if !anchored {
		return timeoracle.Reject(timeoracle.ReasonAnchorNotFound,
			"no header dep at timestamp %d", post.LastUpdated)
	}

	token := identity.TokenTypeHash(v.hasher, v.cfg.TokenCodeHash, v.cfg.TokenHashType, self)
	in, err := scan.SumTokenAmount(tx, timeoracle.SourceInput, token)
	if err != nil {
		return err
	}
	out, err := scan.SumTokenAmount(tx, timeoracle.SourceOutput, token)
	if err != nil {
		return err
	}
	if !out.Gt(in) {
		return timeoracle.Reject(timeoracle.ReasonIssuanceOutOfBounds,
			"outputs hold %s tokens, inputs %s; an update must mint", out.Dec(), in.Dec())
	}
	if minted := new(uint256.Int).Sub(out, in); !minted.Lt(uint256.NewInt(v.cfg.MaxIssuance)) {
		return timeoracle.Reject(timeoracle.ReasonIssuanceOutOfBounds,
			"minted %s tokens, limit is below %d", minted.Dec(), v.cfg.MaxIssuance)
	}
	return nil
}

// locate finds a group cell on the full side it belongs to. A group
// cell the host cannot place is IndexOutOfBound.
func locate(tx timeoracle.TxView, script types.Script, src timeoracle.Source) (int, error) {
	index, found, err := scan.FindPositionByIdentity(tx, script, src)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, timeoracle.Reject(timeoracle.ReasonIndexOutOfBound, "oracle cell not found in %s", src)
	}
	return index, nil
}

func loadRecord(tx timeoracle.TxView, index int, src timeoracle.Source) (types.TimeOracle, error) {
	data, err := tx.CellData(index, src)
	if err != nil {
		return types.TimeOracle{}, timeoracle.FromHostError(err)
	}
	r, err := types.DecodeTimeOracle(data)
	if err != nil {
		return types.TimeOracle{}, timeoracle.Reject(timeoracle.ReasonMalformedData, "%s[%d]: %v", src, index, err)
	}
	return r, nil
}
