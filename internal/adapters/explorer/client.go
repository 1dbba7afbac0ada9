// Package explorer implements the transaction fetcher over an Etherscan-compatible REST API.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sechelper/internal/config"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/client"
	"sechelper/internal/logger"
)

const noTransactionsFound = "No transactions found"

var actions = map[domain.TxSource]string{
	domain.SourceDirect:   "txlist",
	domain.SourceInternal: "txlistinternal",
}

// Client implements client.TransactionFetcher.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.AppLogger
}

// Compile-time check to ensure Client implements client.TransactionFetcher
var _ client.TransactionFetcher = (*Client)(nil)

// NewClient creates an explorer client. A nil httpClient gets one bounded by the configured timeout.
func NewClient(cfg config.ExplorerConfig, httpClient *http.Client, appLogger logger.AppLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second}
	}
	if appLogger == nil {
		appLogger = logger.NewDiscardLogger()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     appLogger.With(logger.KeyComponent, "explorer"),
	}
}

// FetchAll runs the direct and internal queries concurrently and returns the direct
// transactions followed by the internal ones.
func (c *Client) FetchAll(ctx context.Context, address domain.Address, blocks domain.BlockRange) ([]domain.Transaction, error) {
	if err := blocks.Validate(); err != nil {
		return nil, err
	}

	var direct, internal []domain.Transaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		direct, err = c.query(gctx, domain.SourceDirect, address, blocks)
		return err
	})
	g.Go(func() error {
		var err error
		internal, err = c.query(gctx, domain.SourceInternal, address, blocks)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]domain.Transaction, 0, len(direct)+len(internal))
	all = append(all, direct...)
	return append(all, internal...), nil
}

// Fetch runs a single-source query.
func (c *Client) Fetch(
	ctx context.Context,
	source domain.TxSource,
	address domain.Address,
	blocks domain.BlockRange,
) ([]domain.Transaction, error) {
	if err := blocks.Validate(); err != nil {
		return nil, err
	}
	return c.query(ctx, source, address, blocks)
}

func (c *Client) query(
	ctx context.Context,
	source domain.TxSource,
	address domain.Address,
	blocks domain.BlockRange,
) ([]domain.Transaction, error) {
	action, ok := actions[source]
	if !ok {
		return nil, fmt.Errorf("unsupported transaction source: %q", source)
	}

	reqURL, err := c.buildURL(action, address, blocks)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s request failed: %v", domain.ErrHTTP, action, err)
	}
	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			c.logger.Warn("Failed to close response body", "action", action, logger.KeyError, errClose)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s response: %v", domain.ErrHTTP, action, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %s", domain.ErrHTTP, action, resp.Status)
	}

	records, err := decodeRecords(action, body)
	if err != nil {
		return nil, err
	}

	txs := make([]domain.Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := mapRecordToDomain(rec, source)
		if err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", domain.ErrParse, action, i, err)
		}
		txs = append(txs, tx)
	}

	c.logger.Debug("Explorer query completed",
		"action", action,
		"address", address.String(),
		"from", blocks.From.Value(),
		"to", blocks.To.Value(),
		"count", len(txs),
	)
	return txs, nil
}

func (c *Client) buildURL(action string, address domain.Address, blocks domain.BlockRange) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid explorer base url %q: %w", c.baseURL, err)
	}
	q := base.Query()
	q.Set("module", "account")
	q.Set("action", action)
	q.Set("address", address.String())
	q.Set("startblock", strconv.FormatUint(blocks.From.Value(), 10))
	q.Set("endblock", strconv.FormatUint(blocks.To.Value(), 10))
	q.Set("sort", "asc")
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// decodeRecords unwraps the envelope. Status "0" with an array result is an empty
// page; status "0" with a string result is a rejected request.
func decodeRecords(action string, body []byte) ([]txRecord, error) {
	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s response: %v", domain.ErrParse, action, err)
	}

	var records []txRecord
	if err := json.Unmarshal(envelope.Result, &records); err != nil {
		if envelope.Status == "0" {
			var reason string
			_ = json.Unmarshal(envelope.Result, &reason)
			return nil, fmt.Errorf("%w: %s rejected: %s %s", domain.ErrHTTP, action, envelope.Message, reason)
		}
		return nil, fmt.Errorf("%w: %s result: %v", domain.ErrParse, action, err)
	}

	if envelope.Status == "0" && len(records) > 0 {
		return nil, fmt.Errorf("%w: %s status 0 with %d records", domain.ErrParse, action, len(records))
	}
	if envelope.Status == "0" && !strings.EqualFold(envelope.Message, noTransactionsFound) && envelope.Message != "" {
		return nil, fmt.Errorf("%w: %s rejected: %s", domain.ErrHTTP, action, envelope.Message)
	}
	return records, nil
}
