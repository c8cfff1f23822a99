// Package model defines the raw node records and the public insight schema.
package model

import "encoding/json"

// RawTransaction is the decoded transaction record as produced by the node,
// with satoshi aggregates filled in by the node client. It is immutable input
// to the transform pipeline.
type RawTransaction struct {
	TxID            string           `json:"txid"`
	Overwintered    bool             `json:"overwintered"`
	Version         int32            `json:"version"`
	VersionGroupID  string           `json:"versiongroupid,omitempty"`
	LockTime        uint32           `json:"locktime"`
	ExpiryHeight    uint32           `json:"expiryheight,omitempty"`
	Vin             []RawInput       `json:"vin"`
	Vout            []RawOutput      `json:"vout"`
	JoinSplits      []JoinSplit      `json:"vjoinsplit,omitempty"`
	ValueBalance    float64          `json:"valueBalance,omitempty"`
	ShieldedSpends  []ShieldedSpend  `json:"vShieldedSpend,omitempty"`
	ShieldedOutputs []ShieldedOutput `json:"vShieldedOutput,omitempty"`
	BindingSig      string           `json:"bindingSig,omitempty"`
	BlockHash       string           `json:"blockhash,omitempty"`
	Height          int64            `json:"height"`
	Time            int64            `json:"time,omitempty"`
	BlockTime       int64            `json:"blocktime,omitempty"`
	Hex             string           `json:"hex"`

	// Aggregates computed by the node client after decoding.
	InputSatoshis  int64 `json:"inputSatoshis,omitempty"`
	OutputSatoshis int64 `json:"outputSatoshis,omitempty"`
	FeeSatoshis    int64 `json:"feeSatoshis,omitempty"`
}

// IsCoinbase reports whether the transaction is a coinbase transaction.
func (t *RawTransaction) IsCoinbase() bool {
	return len(t.Vin) > 0 && t.Vin[0].Coinbase != ""
}

// RawInput is one entry of a raw transaction's vin list. For a coinbase
// transaction the first input carries the coinbase script instead of a
// previous-output reference.
type RawInput struct {
	Coinbase  string        `json:"coinbase,omitempty"`
	TxID      string        `json:"txid,omitempty"`
	Vout      uint32        `json:"vout"`
	ScriptSig *RawScriptSig `json:"scriptSig,omitempty"`
	Sequence  uint32        `json:"sequence"`
	Address   string        `json:"address,omitempty"`
	ValueSat  int64         `json:"valueSat,omitempty"`
}

// RawScriptSig is an input's unlocking script.
type RawScriptSig struct {
	Asm string `json:"asm"`
	Hex string `json:"hex"`
}

// RawOutput is one entry of a raw transaction's vout list, including the
// optional protocol payloads the node attaches to special outputs.
type RawOutput struct {
	ValueSat     int64           `json:"valueSat"`
	N            uint32          `json:"n"`
	ScriptPubKey RawScriptPubKey `json:"scriptPubKey"`
	SpentTxID    string          `json:"spentTxId,omitempty"`
	SpentIndex   int64           `json:"spentIndex,omitempty"`
	SpentHeight  int64           `json:"spentHeight,omitempty"`

	CrossChainImport   *CrossChainImport `json:"crosschainimport,omitempty"`
	CrossChainExport   json.RawMessage   `json:"crosschainexport,omitempty"`
	IdentityCommitment json.RawMessage   `json:"identitycommitment,omitempty"`
	ReserveTransfer    *ReserveTransfer  `json:"reservetransfer,omitempty"`
	PbaasNotarization  json.RawMessage   `json:"pbaasNotarization,omitempty"`
	IdentityPrimary    json.RawMessage   `json:"identityprimary,omitempty"`
	CurrencyDefinition json.RawMessage   `json:"currencydefinition,omitempty"`
}

// Address returns the first resolved address of the output, or "".
func (o *RawOutput) Address() string {
	if len(o.ScriptPubKey.Addresses) == 0 {
		return ""
	}
	return o.ScriptPubKey.Addresses[0]
}

// RawScriptPubKey is an output's locking script as decoded by the node.
type RawScriptPubKey struct {
	Asm       string   `json:"asm"`
	Hex       string   `json:"hex"`
	ReqSigs   int32    `json:"reqSigs,omitempty"`
	Type      string   `json:"type,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
}

// CrossChainImport records value imported from another chain, keyed by
// currency identity address.
type CrossChainImport struct {
	Version        int32              `json:"version,omitempty"`
	SourceSystemID string             `json:"sourcesystemid,omitempty"`
	ValueIn        map[string]float64 `json:"valuein,omitempty"`

	// ValueInFriendly mirrors ValueIn with identity addresses replaced by
	// their resolved names. Populated during enrichment.
	ValueInFriendly map[string]float64 `json:"valueinFriendly,omitempty"`
}

// ReserveTransfer moves reserve currency between chains; it may carry a
// cross-system destination.
type ReserveTransfer struct {
	Version               int32           `json:"version,omitempty"`
	CurrencyID            string          `json:"currencyid,omitempty"`
	Value                 float64         `json:"value,omitempty"`
	DestinationCurrencyID string          `json:"destinationcurrencyid,omitempty"`
	CrossSystem           string          `json:"crosssystem,omitempty"`
	Destination           json.RawMessage `json:"destination,omitempty"`
}

// JoinSplit is a Sprout shielded transfer description.
type JoinSplit struct {
	VPubOld       float64  `json:"vpub_old"`
	VPubNew       float64  `json:"vpub_new"`
	Anchor        string   `json:"anchor,omitempty"`
	Nullifiers    []string `json:"nullifiers,omitempty"`
	Commitments   []string `json:"commitments,omitempty"`
	OneTimePubKey string   `json:"onetimePubKey,omitempty"`
	RandomSeed    string   `json:"randomSeed,omitempty"`
	Macs          []string `json:"macs,omitempty"`
	Proof         string   `json:"proof,omitempty"`
	Ciphertexts   []string `json:"ciphertexts,omitempty"`
}

// ShieldedSpend is a Sapling spend description.
type ShieldedSpend struct {
	CV           string `json:"cv"`
	Anchor       string `json:"anchor"`
	Nullifier    string `json:"nullifier"`
	RK           string `json:"rk"`
	Proof        string `json:"proof"`
	SpendAuthSig string `json:"spendAuthSig"`
}

// ShieldedOutput is a Sapling output description.
type ShieldedOutput struct {
	CV            string `json:"cv"`
	CMU           string `json:"cmu"`
	EphemeralKey  string `json:"ephemeralKey"`
	EncCiphertext string `json:"encCiphertext"`
	OutCiphertext string `json:"outCiphertext"`
	Proof         string `json:"proof"`
}
