// Package script decodes auxiliary output script payloads via the node.
package script

import (
	"context"
	"fmt"

	"github.com/alexenglish/insight-api-komodo/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// NodeDecoder is the node's script-decoding service.
type NodeDecoder interface {
	DecodeScript(ctx context.Context, scriptHex string) (*model.ScriptDecoding, error)
}

// Decoder extracts the payload matching an output's declared decode type from
// the node's decodescript result.
type Decoder struct {
	node NodeDecoder
}

// NewDecoder constructs a script decoder.
func NewDecoder(node NodeDecoder) *Decoder {
	return &Decoder{node: node}
}

// Decode decodes one output script. The caller absorbs errors: a failed
// decode leaves the output in its minimal pre-decode form.
func (d *Decoder) Decode(ctx context.Context, scriptHex string, declaredType model.DecodeType) (*model.DecodedScript, error) {
	decoded, err := d.node.DecodeScript(ctx, scriptHex)
	if err != nil {
		return nil, err
	}

	switch declaredType {
	case model.DecodeFeePool:
		if decoded.FeePool == nil || decoded.FeePool.CurrencyValues == nil {
			return nil, fmt.Errorf("decodescript result carries no feepool currency values")
		}
		return &model.DecodedScript{FeePool: decoded.FeePool}, nil
	case model.DecodeAcceptedNotarization:
		if decoded.AcceptedNotarization == nil {
			return nil, fmt.Errorf("decodescript result carries no accepted notarization")
		}
		return &model.DecodedScript{AcceptedNotarization: decoded.AcceptedNotarization}, nil
	case model.DecodeOpReturn:
		if decoded.P2SH == "" {
			return nil, fmt.Errorf("decodescript result carries no p2sh redemption address")
		}
		return &model.DecodedScript{P2SH: decoded.P2SH}, nil
	default:
		return nil, fmt.Errorf("unknown decode type %q", declaredType)
	}
}
