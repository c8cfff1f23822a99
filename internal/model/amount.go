package model

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

const satoshisPerCoin = 100_000_000

// SatoshisToCoin converts minimal units to a decimal coin amount. Used for
// transaction-level aggregates, which stay numeric in the public schema.
func SatoshisToCoin(sat int64) float64 {
	return btcutil.Amount(sat).ToBTC()
}

// FormatValue renders minimal units with exactly eight decimal places, the
// representation used for output values.
func FormatValue(sat int64) string {
	sign := ""
	if sat < 0 {
		sign = "-"
		sat = -sat
	}
	return fmt.Sprintf("%s%d.%08d", sign, sat/satoshisPerCoin, sat%satoshisPerCoin)
}
