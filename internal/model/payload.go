package model

import "encoding/json"

// PayloadKind tags which protocol payload (if any) an output carries.
// Kinds are mutually exclusive per output.
type PayloadKind string

const (
	PayloadPlain              PayloadKind = "plain"
	PayloadCrossChainImport   PayloadKind = "crossChainImport"
	PayloadCrossChainExport   PayloadKind = "crossChainExport"
	PayloadIdentityCommitment PayloadKind = "identityCommitment"
	PayloadReserveTransfer    PayloadKind = "reserveTransfer"
	PayloadPbaasNotarization  PayloadKind = "pbaasNotarization"
	PayloadIdentityPrimary    PayloadKind = "identityPrimary"
	PayloadCurrencyDefinition PayloadKind = "currencyDefinition"
)

// OutputPayload is the tagged variant of an output's protocol payload. The
// constructor sets exactly the field matching Kind; all others stay nil, so
// two mutually exclusive annotations can never land on one output.
type OutputPayload struct {
	Kind PayloadKind `json:"-"`

	CrossChainImport   *CrossChainImport `json:"crosschainimport,omitempty"`
	CrossChainExport   json.RawMessage   `json:"crosschainexport,omitempty"`
	IdentityCommitment json.RawMessage   `json:"identitycommitment,omitempty"`
	ReserveTransfer    *ReserveTransfer  `json:"reservetransfer,omitempty"`
	PbaasNotarization  json.RawMessage   `json:"pbaasNotarization,omitempty"`
	IdentityPrimary    json.RawMessage   `json:"identityprimary,omitempty"`
	CurrencyDefinition json.RawMessage   `json:"currencydefinition,omitempty"`
}

// PayloadFromRaw classifies a raw output into its payload variant. The first
// matching payload wins; a raw record carrying more than one is malformed and
// only the highest-priority payload survives.
func PayloadFromRaw(out *RawOutput) OutputPayload {
	switch {
	case out.CrossChainImport != nil:
		cci := *out.CrossChainImport
		return OutputPayload{Kind: PayloadCrossChainImport, CrossChainImport: &cci}
	case len(out.CrossChainExport) > 0:
		return OutputPayload{Kind: PayloadCrossChainExport, CrossChainExport: out.CrossChainExport}
	case len(out.IdentityCommitment) > 0:
		return OutputPayload{Kind: PayloadIdentityCommitment, IdentityCommitment: out.IdentityCommitment}
	case out.ReserveTransfer != nil:
		rt := *out.ReserveTransfer
		return OutputPayload{Kind: PayloadReserveTransfer, ReserveTransfer: &rt}
	case len(out.PbaasNotarization) > 0:
		return OutputPayload{Kind: PayloadPbaasNotarization, PbaasNotarization: out.PbaasNotarization}
	case len(out.IdentityPrimary) > 0:
		return OutputPayload{Kind: PayloadIdentityPrimary, IdentityPrimary: out.IdentityPrimary}
	case len(out.CurrencyDefinition) > 0:
		return OutputPayload{Kind: PayloadCurrencyDefinition, CurrencyDefinition: out.CurrencyDefinition}
	default:
		return OutputPayload{Kind: PayloadPlain}
	}
}
