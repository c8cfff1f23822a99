package insight

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexenglish/insight-api-komodo/internal/model"
)

// Service is the transaction-facing entry point used by the HTTP layer. Only
// failures of the primary source lookups surface as errors; enrichment
// degrades silently inside the transform.
type Service struct {
	node        NodeSource
	transformer *Transformer
	logger      *zap.Logger
}

// NewService constructs the transaction service.
func NewService(node NodeSource, transformer *Transformer, logger *zap.Logger) *Service {
	return &Service{
		node:        node,
		transformer: transformer,
		logger:      logger,
	}
}

// TransactionByID fetches and transforms one transaction.
func (s *Service) TransactionByID(ctx context.Context, txid string, opts Options) (*model.TransformedTransaction, error) {
	raw, err := s.node.RawTransaction(ctx, txid)
	if err != nil {
		return nil, err
	}
	height, err := s.node.ChainHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain height: %w", err)
	}
	return s.transformer.Transform(ctx, raw, height, opts), nil
}

// BlockTransactions fetches and transforms every transaction of a block.
func (s *Service) BlockTransactions(ctx context.Context, blockHash string, opts Options) ([]*model.TransformedTransaction, error) {
	txids, err := s.node.BlockTransactionIDs(ctx, blockHash)
	if err != nil {
		return nil, err
	}
	height, err := s.node.ChainHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain height: %w", err)
	}

	txs := make([]*model.TransformedTransaction, 0, len(txids))
	for _, txid := range txids {
		raw, err := s.node.RawTransaction(ctx, txid)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", blockHash, err)
		}
		txs = append(txs, s.transformer.Transform(ctx, raw, height, opts))
	}
	return txs, nil
}
