package model

// DecodeType marks an output whose script carries an encoded payload the node
// must decode. At most one type applies per output.
type DecodeType string

const (
	DecodeNone                 DecodeType = ""
	DecodeFeePool              DecodeType = "feepool"
	DecodeAcceptedNotarization DecodeType = "acceptednotarization"
	DecodeOpReturn             DecodeType = "opreturn"
)

// FeePool is an on-chain aggregate fee balance, keyed by currency identity
// address.
type FeePool struct {
	CurrencyValues map[string]float64 `json:"currencyvalues,omitempty"`

	// CurrencyValuesFriendly mirrors CurrencyValues with identity addresses
	// replaced by their resolved names. Populated during enrichment.
	CurrencyValuesFriendly map[string]float64 `json:"currencyvaluesFriendly,omitempty"`
}

// AcceptedNotarization records acceptance of a cross-chain checkpoint.
type AcceptedNotarization struct {
	Version            int32  `json:"version,omitempty"`
	CurrencyID         string `json:"currencyid"`
	NotarizationHeight int64  `json:"notarizationheight,omitempty"`

	// CurrencyNameFriendly carries the resolved name of CurrencyID.
	// Populated during enrichment.
	CurrencyNameFriendly string `json:"currencyNameFriendly,omitempty"`
}

// ScriptDecoding is the node's decodescript result, trimmed to the
// sub-structures the pipeline extracts.
type ScriptDecoding struct {
	Asm                  string                `json:"asm,omitempty"`
	Type                 string                `json:"type,omitempty"`
	P2SH                 string                `json:"p2sh,omitempty"`
	FeePool              *FeePool              `json:"feepool,omitempty"`
	AcceptedNotarization *AcceptedNotarization `json:"acceptednotarization,omitempty"`
}

// DecodedScript is the payload extracted from a flagged output's script.
// Exactly one field is set, matching the output's decode type.
type DecodedScript struct {
	FeePool              *FeePool
	AcceptedNotarization *AcceptedNotarization
	P2SH                 string
}

// IdentityResult is the node's getidentity response, trimmed to the name
// sources the resolver reads.
type IdentityResult struct {
	IdentityInfo *IdentityInfo    `json:"identityinfo,omitempty"`
	Identity     *IdentityDetails `json:"identity,omitempty"`
}

// IdentityInfo carries the registered friendly name of an identity.
type IdentityInfo struct {
	FriendlyName string `json:"friendlyname,omitempty"`
}

// IdentityDetails carries the identity object's own name field.
type IdentityDetails struct {
	Name string `json:"name,omitempty"`
}

// NodeInfo is the subset of getinfo the status endpoint reports.
type NodeInfo struct {
	Version         int64   `json:"version"`
	ProtocolVersion int64   `json:"protocolversion"`
	Blocks          int64   `json:"blocks"`
	Connections     int64   `json:"connections"`
	Difficulty      float64 `json:"difficulty"`
	Testnet         bool    `json:"testnet"`
	Errors          string  `json:"errors,omitempty"`
}

// AddressBalance is the node's getaddressbalance response.
type AddressBalance struct {
	Balance  int64 `json:"balance"`
	Received int64 `json:"received"`
}
