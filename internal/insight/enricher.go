package insight

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/alexenglish/insight-api-komodo/internal/identity"
	"github.com/alexenglish/insight-api-komodo/internal/model"
	"github.com/alexenglish/insight-api-komodo/pkg/workerpool"
)

const defaultEnrichWorkers = 8

// Enricher coordinates script decoding and identity resolution across a
// transaction's outputs. Decoding can surface identity addresses that were
// not visible up front, so resolution runs in two waves: wave 1 overlaps with
// decoding, and a conditional wave 2 picks up addresses the decoded payloads
// revealed.
type Enricher struct {
	resolver IdentityResolver
	decoder  ScriptDecoder
	logger   *zap.Logger
	workers  int
}

// NewEnricher constructs an enricher.
func NewEnricher(resolver IdentityResolver, decoder ScriptDecoder, logger *zap.Logger) *Enricher {
	return &Enricher{
		resolver: resolver,
		decoder:  decoder,
		logger:   logger,
		workers:  defaultEnrichWorkers,
	}
}

// Enrich decodes flagged outputs, resolves every identity address they
// mention and merges the friendly-name mappings back into the outputs. All
// failures degrade to fallback values; Enrich never fails a transform.
func (e *Enricher) Enrich(ctx context.Context, vout []*model.TransformedOutput) {
	// Scan pass: wave-1 addresses and the outputs needing decode.
	addrSet := make(map[string]struct{})
	var decodeIdx []int
	for i, out := range vout {
		if cci := out.CrossChainImport; cci != nil {
			for addr := range cci.ValueIn {
				if identity.IsAddress(addr) {
					addrSet[addr] = struct{}{}
				}
			}
		}
		if out.DecodeType != model.DecodeNone {
			decodeIdx = append(decodeIdx, i)
		}
	}
	if len(addrSet) == 0 && len(decodeIdx) == 0 {
		return
	}

	wave1 := make([]string, 0, len(addrSet))
	for addr := range addrSet {
		wave1 = append(wave1, addr)
	}

	// Wave 1: decode and resolve concurrently; both must finish before the
	// pending set can be computed.
	names := make(map[string]string, len(addrSet))
	var namesMu sync.Mutex
	decoded := make([]*model.DecodedScript, len(vout))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.decodeOutputs(ctx, vout, decodeIdx, decoded)
	}()
	go func() {
		defer wg.Done()
		e.resolveAddresses(ctx, wave1, names, &namesMu)
	}()
	wg.Wait()

	// Post-decode expansion: attach payloads and collect addresses that only
	// became visible after decoding.
	var pending []string
	for _, i := range decodeIdx {
		dec := decoded[i]
		if dec == nil {
			continue
		}
		out := vout[i]
		switch out.DecodeType {
		case model.DecodeFeePool:
			out.FeePool = dec.FeePool
			for addr := range dec.FeePool.CurrencyValues {
				if !identity.IsAddress(addr) {
					continue
				}
				if _, done := names[addr]; done {
					continue
				}
				if _, queued := addrSet[addr]; queued {
					continue
				}
				addrSet[addr] = struct{}{}
				pending = append(pending, addr)
			}
		case model.DecodeAcceptedNotarization:
			out.AcceptedNotarization = dec.AcceptedNotarization
			addr := dec.AcceptedNotarization.CurrencyID
			if identity.IsAddress(addr) {
				if _, done := names[addr]; !done {
					if _, queued := addrSet[addr]; !queued {
						addrSet[addr] = struct{}{}
						pending = append(pending, addr)
					}
				}
			}
		case model.DecodeOpReturn:
			out.P2SHAddress = dec.P2SH
			out.IsP2SHRedeem = true
		}
	}

	// Conditional wave 2.
	if len(pending) > 0 {
		e.resolveAddresses(ctx, pending, names, &namesMu)
	}

	// Merge pass: substitute friendly names, falling back to the address
	// itself where resolution produced nothing.
	for _, out := range vout {
		if cci := out.CrossChainImport; cci != nil && len(cci.ValueIn) > 0 {
			cci.ValueInFriendly = friendlyKeyed(cci.ValueIn, names)
		}
		if fp := out.FeePool; fp != nil && len(fp.CurrencyValues) > 0 {
			fp.CurrencyValuesFriendly = friendlyKeyed(fp.CurrencyValues, names)
		}
		if an := out.AcceptedNotarization; an != nil && an.CurrencyID != "" {
			an.CurrencyNameFriendly = nameOrAddress(names, an.CurrencyID)
		}
	}
}

func (e *Enricher) decodeOutputs(ctx context.Context, vout []*model.TransformedOutput, decodeIdx []int, decoded []*model.DecodedScript) {
	_ = workerpool.Process(ctx, e.workers, decodeIdx, func(ctx context.Context, i int) error {
		out := vout[i]
		dec, err := e.decoder.Decode(ctx, out.ScriptPubKey.Hex, out.DecodeType)
		if err != nil {
			e.logger.Warn("output script decode failed",
				zap.Uint32("vout", out.N),
				zap.String("type", string(out.DecodeType)),
				zap.Error(err))
			return nil
		}
		decoded[i] = dec
		return nil
	})
}

func (e *Enricher) resolveAddresses(ctx context.Context, addrs []string, names map[string]string, mu *sync.Mutex) {
	_ = workerpool.Process(ctx, e.workers, addrs, func(ctx context.Context, addr string) error {
		name := e.resolver.Resolve(ctx, addr)
		mu.Lock()
		names[addr] = name
		mu.Unlock()
		return nil
	})
}

func friendlyKeyed(values map[string]float64, names map[string]string) map[string]float64 {
	friendly := make(map[string]float64, len(values))
	for addr, amount := range values {
		friendly[nameOrAddress(names, addr)] = amount
	}
	return friendly
}

func nameOrAddress(names map[string]string, addr string) string {
	if name, ok := names[addr]; ok {
		return name
	}
	return addr
}
