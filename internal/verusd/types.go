// Package verusd wraps JSON-RPC access to a Verus-family full node.
package verusd

import (
	"encoding/json"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RawRequester issues raw JSON-RPC calls. Satisfied by *rpcclient.Client.
	RawRequester interface {
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
