package verusd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"go.uber.org/zap"

	"github.com/alexenglish/insight-api-komodo/internal/clock"
	"github.com/alexenglish/insight-api-komodo/internal/model"
)

// ErrNotFound marks a soft not-found from the node (missing transaction,
// unknown identity, unknown block), distinct from transport failures.
var ErrNotFound = errors.New("not found")

const defaultRetryDelay = 250 * time.Millisecond

// Client is an instrumented JSON-RPC client for the full node. Chain-specific
// calls go through RawRequest since btcjson knows nothing about identities or
// PBaaS payloads.
type Client struct {
	rpc        RawRequester
	rpcMetrics RPCMetrics
	logger     *zap.Logger
	retryDelay time.Duration
}

// NewClient constructs a node client.
func NewClient(rpc RawRequester, rpcMetrics RPCMetrics, logger *zap.Logger) *Client {
	return &Client{
		rpc:        rpc,
		rpcMetrics: rpcMetrics,
		logger:     logger,
		retryDelay: defaultRetryDelay,
	}
}

// RawTransaction fetches a transaction in verbose form. A missing transaction
// returns ErrNotFound.
func (c *Client) RawTransaction(ctx context.Context, txid string) (*model.RawTransaction, error) {
	var tx model.RawTransaction
	if err := c.call(ctx, "getrawtransaction", []interface{}{txid, 1}, &tx); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("transaction %s: %w", txid, ErrNotFound)
		}
		return nil, fmt.Errorf("getrawtransaction %s: %w", txid, err)
	}
	normalize(&tx)
	return &tx, nil
}

// Identity fetches identity information for an identity address or name. A
// missing identity returns ErrNotFound.
func (c *Client) Identity(ctx context.Context, address string) (*model.IdentityResult, error) {
	var res model.IdentityResult
	if err := c.call(ctx, "getidentity", []interface{}{address}, &res); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("identity %s: %w", address, ErrNotFound)
		}
		return nil, fmt.Errorf("getidentity %s: %w", address, err)
	}
	return &res, nil
}

// DecodeScript asks the node to decode an output script.
func (c *Client) DecodeScript(ctx context.Context, scriptHex string) (*model.ScriptDecoding, error) {
	var res model.ScriptDecoding
	if err := c.call(ctx, "decodescript", []interface{}{scriptHex}, &res); err != nil {
		return nil, fmt.Errorf("decodescript: %w", err)
	}
	return &res, nil
}

// ChainHeight returns the current best-block height.
func (c *Client) ChainHeight(ctx context.Context) (int64, error) {
	var height int64
	if err := c.call(ctx, "getblockcount", nil, &height); err != nil {
		return 0, fmt.Errorf("getblockcount: %w", err)
	}
	return height, nil
}

// BlockTransactionIDs lists the txids of a block by hash. A missing block
// returns ErrNotFound.
func (c *Client) BlockTransactionIDs(ctx context.Context, blockHash string) ([]string, error) {
	var block struct {
		Tx []string `json:"tx"`
	}
	if err := c.call(ctx, "getblock", []interface{}{blockHash}, &block); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("block %s: %w", blockHash, ErrNotFound)
		}
		return nil, fmt.Errorf("getblock %s: %w", blockHash, err)
	}
	return block.Tx, nil
}

// Info reports node status.
func (c *Client) Info(ctx context.Context) (*model.NodeInfo, error) {
	var info model.NodeInfo
	if err := c.call(ctx, "getinfo", nil, &info); err != nil {
		return nil, fmt.Errorf("getinfo: %w", err)
	}
	return &info, nil
}

// AddressBalance returns the aggregate balance of one address.
func (c *Client) AddressBalance(ctx context.Context, address string) (*model.AddressBalance, error) {
	params := []interface{}{map[string][]string{"addresses": {address}}}
	var balance model.AddressBalance
	if err := c.call(ctx, "getaddressbalance", params, &balance); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("address %s: %w", address, ErrNotFound)
		}
		return nil, fmt.Errorf("getaddressbalance %s: %w", address, err)
	}
	return &balance, nil
}

// call issues one RPC with a single retry on transport-level failures. RPC
// protocol errors are never retried.
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := c.request(method, params)
	if err != nil && isTransient(err) {
		c.logger.Warn("rpc call failed, retrying",
			zap.String("method", method), zap.Error(err))
		if sleepErr := clock.SleepWithContext(ctx, c.retryDelay); sleepErr != nil {
			return sleepErr
		}
		raw, err = c.request(method, params)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal %s result: %w", method, err)
	}
	return nil
}

func (c *Client) request(method string, params []interface{}) (res json.RawMessage, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe(method, err, started)
	}()

	msgs := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, merr := json.Marshal(p)
		if merr != nil {
			return nil, fmt.Errorf("marshal %s param: %w", method, merr)
		}
		msgs = append(msgs, b)
	}
	return c.rpc.RawRequest(method, msgs)
}

// normalize fills the fields the transform pipeline expects but the node does
// not report directly: unconfirmed height as -1 and satoshi aggregates.
func normalize(tx *model.RawTransaction) {
	if tx.BlockHash == "" && tx.Height == 0 {
		tx.Height = -1
	}

	var out int64
	for _, vout := range tx.Vout {
		out += vout.ValueSat
	}
	tx.OutputSatoshis = out

	if tx.IsCoinbase() {
		return
	}
	var in int64
	for _, vin := range tx.Vin {
		in += vin.ValueSat
	}
	tx.InputSatoshis = in
	tx.FeeSatoshis = in - out
}

func isNotFound(err error) bool {
	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	return rpcErr.Code == btcjson.ErrRPCInvalidAddressOrKey || rpcErr.Code == btcjson.ErrRPCNoTxInfo
}

// isTransient reports whether an error looks like a transport failure rather
// than an RPC protocol response.
func isTransient(err error) bool {
	var rpcErr *btcjson.RPCError
	return !errors.As(err, &rpcErr)
}
