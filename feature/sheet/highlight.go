package sheet

import (
	"context"
	"net/url"
	"strings"
)

// Highlighter compares a configured set of fields by derived equivalence
// key (the domain of the field's first URL) and flags the row's compared
// cells when they disagree.
type Highlighter struct {
	cfg *Config
}

// NewHighlighter creates a Highlighter for the configured sheet.
func NewHighlighter(cfg *Config) *Highlighter {
	return &Highlighter{cfg: cfg}
}

// Check re-evaluates the configured fields on row. On mismatch it paints
// every compared cell with the mismatch color; on match it clears them.
// An empty field list on any side fails the comparison. The returned bool
// reports whether the fields agree.
func (h *Highlighter) Check(ctx context.Context, row *Row) (bool, error) {
	fields := h.cfg.Mismatch()
	if len(fields) < 2 {
		return true, nil
	}

	match := true
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		items, err := row.List(f)
		if err != nil {
			return false, err
		}
		if len(items) == 0 {
			match = false
			break
		}
		key, ok := domainOf(items[0])
		if !ok {
			match = false
			break
		}
		keys = append(keys, key)
	}

	if match {
		for _, k := range keys[1:] {
			if k != keys[0] {
				match = false
				break
			}
		}
	}

	color := ""
	if !match {
		color = h.cfg.MismatchColor
	}
	for _, f := range fields {
		col, ok := row.Col(f)
		if !ok {
			continue
		}
		if err := row.store.SetBackground(ctx, row.Index(), col, color); err != nil {
			return match, err
		}
	}
	return match, nil
}

// domainOf reduces a URL to its comparison key: the lowercased host with
// any leading "www." stripped. A scheme-less value is tolerated.
func domainOf(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	return host, true
}
