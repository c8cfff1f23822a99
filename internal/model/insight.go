package model

// TransformedTransaction is the public insight representation of one
// transaction. It is derived per call and never mutated after the transform
// returns.
type TransformedTransaction struct {
	TxID          string               `json:"txid"`
	Version       int32                `json:"version"`
	LockTime      uint32               `json:"locktime"`
	Vin           []*TransformedInput  `json:"vin"`
	Vout          []*TransformedOutput `json:"vout"`
	BlockHash     string               `json:"blockhash,omitempty"`
	BlockHeight   int64                `json:"blockheight"`
	Confirmations int64                `json:"confirmations"`
	Time          int64                `json:"time,omitempty"`
	BlockTime     int64                `json:"blocktime,omitempty"`
	IsCoinBase    bool                 `json:"isCoinBase,omitempty"`
	ValueOut      float64              `json:"valueOut"`
	Size          int64                `json:"size"`
	ValueIn       float64              `json:"valueIn,omitempty"`
	Fees          float64              `json:"fees,omitempty"`

	// Overwinter fields, present only when the raw record is overwintered.
	Overwintered   bool   `json:"fOverwintered,omitempty"`
	VersionGroupID string `json:"nVersionGroupId,omitempty"`
	ExpiryHeight   uint32 `json:"nExpiryHeight,omitempty"`

	// Sapling fields, present only when overwintered and version >= 4.
	ValueBalance    float64          `json:"valueBalance,omitempty"`
	ShieldedSpends  []ShieldedSpend  `json:"vShieldedSpend,omitempty"`
	ShieldedOutputs []ShieldedOutput `json:"vShieldedOutput,omitempty"`
	BindingSig      string           `json:"bindingSig,omitempty"`

	JoinSplits []JoinSplit `json:"vjoinsplit,omitempty"`
}

// TransformedInput is the public representation of one input. Coinbase
// transactions carry a single synthetic input with only Coinbase, Sequence
// and N set.
type TransformedInput struct {
	Coinbase  string     `json:"coinbase,omitempty"`
	TxID      string     `json:"txid,omitempty"`
	Vout      uint32     `json:"vout,omitempty"`
	Sequence  uint32     `json:"sequence"`
	N         uint32     `json:"n"`
	ScriptSig *ScriptSig `json:"scriptSig,omitempty"`
	Addr      string     `json:"addr,omitempty"`
	ValueSat  int64      `json:"valueSat,omitempty"`
	Value     float64    `json:"value,omitempty"`
}

// ScriptSig is a transformed input's unlocking script.
type ScriptSig struct {
	Hex string `json:"hex,omitempty"`
	Asm string `json:"asm,omitempty"`
}

// TransformedOutput is the public representation of one output, with the
// payload variant inlined and any decoded/enriched fields attached.
type TransformedOutput struct {
	Value        string           `json:"value"`
	N            uint32           `json:"n"`
	ScriptPubKey *ScriptPubKeyInfo `json:"scriptPubKey,omitempty"`
	SpentTxID    string           `json:"spentTxId,omitempty"`
	SpentIndex   int64            `json:"spentIndex,omitempty"`
	SpentHeight  int64            `json:"spentHeight,omitempty"`

	OutputPayload

	// Decoded script payloads, attached during enrichment for flagged
	// outputs. Absent when decoding failed or was not required.
	FeePool              *FeePool              `json:"feepool,omitempty"`
	AcceptedNotarization *AcceptedNotarization `json:"acceptednotarization,omitempty"`
	P2SHAddress          string                `json:"p2shAddress,omitempty"`
	IsP2SHRedeem         bool                  `json:"isP2shRedeem,omitempty"`

	// Protocol carries display metadata for well-known registry addresses.
	Protocol *ProtocolInfo `json:"protocol,omitempty"`

	// DecodeType is the script-decode requirement assigned during field
	// mapping; it drives enrichment and is not part of the public schema.
	DecodeType DecodeType `json:"-"`
}

// ScriptPubKeyInfo is a transformed output's locking script.
type ScriptPubKeyInfo struct {
	Hex       string   `json:"hex,omitempty"`
	Asm       string   `json:"asm,omitempty"`
	ReqSigs   int32    `json:"reqSigs,omitempty"`
	Type      string   `json:"type,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
}

// ProtocolInfo is the display metadata of a protocol address.
type ProtocolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
}
