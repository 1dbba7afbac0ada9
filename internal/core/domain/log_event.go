package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// LogFilter selects contract logs for the event listener.
type LogFilter struct {
	Address   Address
	Topic     common.Hash
	FromBlock BlockHeight
}

// LogEvent is a contract log delivered by a log subscription.
type LogEvent struct {
	BlockNumber BlockHeight
	TxHash      string
	Address     Address
	Topics      []common.Hash
	Data        []byte
}

// Words decodes the topics followed by the 32-byte words of the data as unsigned integers.
// A trailing partial word is decoded as-is.
func (e LogEvent) Words() []*big.Int {
	words := make([]*big.Int, 0, len(e.Topics)+len(e.Data)/32+1)
	for _, t := range e.Topics {
		words = append(words, new(big.Int).SetBytes(t.Bytes()))
	}
	for off := 0; off < len(e.Data); off += 32 {
		end := off + 32
		if end > len(e.Data) {
			end = len(e.Data)
		}
		words = append(words, new(big.Int).SetBytes(e.Data[off:end]))
	}
	return words
}
