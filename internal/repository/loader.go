package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/finance-insights/internal/models"
)

// Load reads all six domains from src and assembles a snapshot.
// A failure in any single domain fails the whole load.
func Load(ctx context.Context, src Source, now time.Time) (*models.Dataset, error) {
	ds := &models.Dataset{
		Source:   src.Name(),
		LoadedAt: now,
	}

	for _, domain := range models.AllDomains {
		raw, err := src.Document(ctx, domain)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", domain, err)
		}
		if err := decodeDomain(ds, domain, raw); err != nil {
			return nil, fmt.Errorf("malformed %s document: %w", domain, err)
		}
	}

	return ds, nil
}

func decodeDomain(ds *models.Dataset, domain models.Domain, raw []byte) error {
	switch domain {
	case models.DomainTransactions:
		var txs models.Transactions
		if err := decodeStrict(raw, &txs); err != nil {
			return err
		}
		normalized, err := txs.Normalize()
		if err != nil {
			return err
		}
		ds.Transactions = normalized
	case models.DomainCredit:
		if err := requireFields(raw, "score", "rating"); err != nil {
			return err
		}
		if err := decodeStrict(raw, &ds.Credit); err != nil {
			return err
		}
		if strings.TrimSpace(ds.Credit.Rating) == "" {
			return fmt.Errorf("empty rating")
		}
	case models.DomainAssets:
		if err := requireFields(raw, "bank_balance", "cash"); err != nil {
			return err
		}
		return decodeStrict(raw, &ds.Assets)
	case models.DomainEPF:
		if err := requireFields(raw, "balance"); err != nil {
			return err
		}
		return decodeStrict(raw, &ds.EPF)
	case models.DomainInvestments:
		var inv models.Investments
		if err := decodeStrict(raw, &inv); err != nil {
			return err
		}
		if inv == nil {
			inv = models.Investments{}
		}
		ds.Investments = inv
	case models.DomainLiabilities:
		var l models.Liabilities
		if err := decodeStrict(raw, &l); err != nil {
			return err
		}
		if l == nil {
			l = models.Liabilities{}
		}
		ds.Liabilities = l
	default:
		return fmt.Errorf("unknown domain %q", domain)
	}
	return nil
}

// decodeStrict rejects empty and null documents and trailing data
func decodeStrict(raw []byte, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty document")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("null document")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after document")
	}
	return nil
}

// requireFields checks that the document is an object carrying every field
// with a non-null value
func requireFields(raw []byte, fields ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("expected an object: %w", err)
	}
	if obj == nil {
		return fmt.Errorf("null document")
	}
	for _, f := range fields {
		v, ok := obj[f]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("missing field %q", f)
		}
	}
	return nil
}
