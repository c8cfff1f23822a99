package insight

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/alexenglish/insight-api-komodo/internal/model"
	"github.com/alexenglish/insight-api-komodo/internal/registry"
)

// Options suppress field groups on transformed inputs and outputs.
type Options struct {
	NoScriptSig bool
	NoAsm       bool
	NoSpent     bool
}

// Transformer maps raw transaction records into the public schema, delegating
// output enrichment to the enricher.
type Transformer struct {
	enricher OutputEnricher
	registry *registry.Registry
	logger   *zap.Logger
}

// NewTransformer constructs a transformer.
func NewTransformer(enricher OutputEnricher, reg *registry.Registry, logger *zap.Logger) *Transformer {
	return &Transformer{
		enricher: enricher,
		registry: reg,
		logger:   logger,
	}
}

// Transform produces the public representation of one raw transaction.
// chainHeight is the node's current best-block height, used for confirmation
// arithmetic.
func (t *Transformer) Transform(ctx context.Context, raw *model.RawTransaction, chainHeight int64, opts Options) *model.TransformedTransaction {
	coinbase := raw.IsCoinbase()

	tt := &model.TransformedTransaction{
		TxID:       raw.TxID,
		Version:    raw.Version,
		LockTime:   raw.LockTime,
		IsCoinBase: coinbase,
		Size:       int64(len(raw.Hex) / 2),
		Time:       raw.Time,
		ValueOut:   model.SatoshisToCoin(raw.OutputSatoshis),
	}

	if raw.Height >= 0 {
		tt.BlockHash = raw.BlockHash
		tt.BlockHeight = raw.Height
		tt.BlockTime = raw.BlockTime
		tt.Confirmations = chainHeight - raw.Height + 1
	} else {
		tt.BlockHeight = -1
		tt.Confirmations = 0
	}

	if coinbase {
		// One synthetic input carrying the coinbase script, regardless of
		// the raw input list.
		tt.Vin = []*model.TransformedInput{{
			Coinbase: raw.Vin[0].Coinbase,
			Sequence: raw.Vin[0].Sequence,
			N:        0,
		}}
	} else {
		tt.Vin = make([]*model.TransformedInput, 0, len(raw.Vin))
		for i := range raw.Vin {
			tt.Vin = append(tt.Vin, t.transformInput(&raw.Vin[i], uint32(i), opts))
		}
		tt.ValueIn = model.SatoshisToCoin(raw.InputSatoshis)
		tt.Fees = model.SatoshisToCoin(raw.FeeSatoshis)
	}

	tt.Vout = make([]*model.TransformedOutput, 0, len(raw.Vout))
	for i := range raw.Vout {
		tt.Vout = append(tt.Vout, t.transformOutput(&raw.Vout[i], opts))
	}

	t.enricher.Enrich(ctx, tt.Vout)

	if raw.Overwintered {
		tt.Overwintered = true
		tt.VersionGroupID = raw.VersionGroupID
		tt.ExpiryHeight = raw.ExpiryHeight
		if raw.Version >= 4 {
			tt.ValueBalance = raw.ValueBalance
			tt.ShieldedSpends = raw.ShieldedSpends
			tt.ShieldedOutputs = raw.ShieldedOutputs
			tt.BindingSig = raw.BindingSig
		}
	}
	if raw.Version >= 2 {
		tt.JoinSplits = raw.JoinSplits
	}

	return tt
}

func (t *Transformer) transformInput(in *model.RawInput, n uint32, opts Options) *model.TransformedInput {
	ti := &model.TransformedInput{
		TxID:     in.TxID,
		Vout:     in.Vout,
		Sequence: in.Sequence,
		N:        n,
		Addr:     in.Address,
		ValueSat: in.ValueSat,
		Value:    model.SatoshisToCoin(in.ValueSat),
	}
	if !opts.NoScriptSig && in.ScriptSig != nil {
		sig := &model.ScriptSig{Hex: in.ScriptSig.Hex}
		if !opts.NoAsm {
			sig.Asm = in.ScriptSig.Asm
		}
		ti.ScriptSig = sig
	}
	return ti
}

// transformOutput maps one raw output independently of all others. Decode
// tagging: an OP_RETURN script with no resolvable address, or an address
// matching a registry entry that declares a decode type. The two conditions
// cannot overlap since OP_RETURN outputs carry no address.
func (t *Transformer) transformOutput(out *model.RawOutput, opts Options) *model.TransformedOutput {
	to := &model.TransformedOutput{
		Value:         model.FormatValue(out.ValueSat),
		N:             out.N,
		OutputPayload: model.PayloadFromRaw(out),
	}

	spk := &model.ScriptPubKeyInfo{
		Hex:       out.ScriptPubKey.Hex,
		ReqSigs:   out.ScriptPubKey.ReqSigs,
		Type:      out.ScriptPubKey.Type,
		Addresses: out.ScriptPubKey.Addresses,
	}
	if !opts.NoAsm {
		spk.Asm = out.ScriptPubKey.Asm
	}
	to.ScriptPubKey = spk

	if !opts.NoSpent {
		to.SpentTxID = out.SpentTxID
		to.SpentIndex = out.SpentIndex
		to.SpentHeight = out.SpentHeight
	}

	if addr := out.Address(); addr != "" {
		if entry, ok := t.registry.Lookup(addr); ok {
			to.Protocol = &model.ProtocolInfo{
				Name:        entry.Name,
				Description: entry.Description,
				Color:       entry.Color,
				Icon:        entry.Icon,
			}
			to.DecodeType = entry.Decode
		}
	} else if strings.HasPrefix(out.ScriptPubKey.Asm, "OP_RETURN") {
		to.DecodeType = model.DecodeOpReturn
	}

	return to
}
