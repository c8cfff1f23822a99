// Package insight turns raw node transaction records into the public API
// representation, including the two-wave identity/script enrichment.
package insight

import (
	"context"

	"github.com/alexenglish/insight-api-komodo/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// IdentityResolver maps an identity address to its friendly name. It
	// never fails; unresolvable addresses resolve to themselves.
	IdentityResolver interface {
		Resolve(ctx context.Context, address string) string
	}

	// ScriptDecoder decodes a flagged output script into its payload.
	ScriptDecoder interface {
		Decode(ctx context.Context, scriptHex string, declaredType model.DecodeType) (*model.DecodedScript, error)
	}

	// OutputEnricher runs the enrichment passes over skeleton outputs.
	OutputEnricher interface {
		Enrich(ctx context.Context, vout []*model.TransformedOutput)
	}

	// NodeSource provides the primary transaction data from the full node.
	NodeSource interface {
		RawTransaction(ctx context.Context, txid string) (*model.RawTransaction, error)
		BlockTransactionIDs(ctx context.Context, blockHash string) ([]string, error)
		ChainHeight(ctx context.Context) (int64, error)
	}
)
