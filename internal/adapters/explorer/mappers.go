package explorer

import (
	"fmt"
	"strings"

	"sechelper/internal/core/domain"
)

// mapRecordToDomain normalizes an explorer record. When methodId is absent or shorter
// than a selector (calldata under 4 bytes) the selector is taken from the call data,
// which yields the zero selector for such short input.
func mapRecordToDomain(rec txRecord, source domain.TxSource) (domain.Transaction, error) {
	hash, err := domain.NewTransactionHash(rec.Hash)
	if err != nil {
		return domain.Transaction{}, err
	}
	from, err := domain.NewAddress(rec.From)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("from: %w", err)
	}
	to, err := domain.NewOptionalAddress(rec.To)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("to: %w", err)
	}

	rawValue := rec.Value
	if strings.TrimSpace(rawValue) == "" {
		rawValue = "0"
	}
	value, err := domain.NewWeiValue(rawValue)
	if err != nil {
		return domain.Transaction{}, err
	}

	selector, err := domain.ParseMethodSelector(rec.MethodID)
	if err != nil || selector.IsZero() {
		selector = domain.MethodSelectorFromInput(rec.Input)
	}

	return domain.Transaction{
		Hash:           hash,
		From:           from,
		To:             to,
		Value:          value,
		Input:          rec.Input,
		MethodSelector: selector,
		Source:         source,
	}, nil
}
