// Package storage persists the client roster and display theme as single
// serialized values under fixed keys.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/rs/zerolog"
)

const (
	ClientsKey = "clients"
	ThemeKey   = "theme"
)

// Theme names recognized in storage.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// KV is the key-value store the gateway writes through to.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Gateway reads and writes the roster and theme.
type Gateway struct {
	kv  KV
	log zerolog.Logger
}

// NewGateway creates a Gateway over kv.
func NewGateway(kv KV, log zerolog.Logger) *Gateway {
	return &Gateway{kv: kv, log: log.With().Str("component", "storage").Logger()}
}

// LoadClients returns the stored roster. A missing or unreadable value
// yields an empty roster; only a failing store is an error.
func (g *Gateway) LoadClients(ctx context.Context) ([]*domain.Client, error) {
	raw, ok, err := g.kv.Get(ctx, ClientsKey)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	if !ok || raw == "" {
		return []*domain.Client{}, nil
	}
	clients, err := DecodeClients([]byte(raw), g.log)
	if err != nil {
		g.log.Warn().Err(err).Msg("stored client roster is malformed, starting empty")
		return []*domain.Client{}, nil
	}
	return clients, nil
}

// SaveClients replaces the stored roster.
func (g *Gateway) SaveClients(ctx context.Context, clients []*domain.Client) error {
	data, err := EncodeClients(clients)
	if err != nil {
		return fmt.Errorf("save clients: %w", err)
	}
	if err := g.kv.Set(ctx, ClientsKey, string(data)); err != nil {
		return fmt.Errorf("save clients: %w", err)
	}
	g.log.Debug().Int("count", len(clients)).Msg("client roster saved")
	return nil
}

// LoadTheme returns the stored theme, ThemeLight when unset or unknown.
func (g *Gateway) LoadTheme(ctx context.Context) (string, error) {
	raw, ok, err := g.kv.Get(ctx, ThemeKey)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	if !ok {
		return ThemeLight, nil
	}
	if raw != ThemeLight && raw != ThemeDark {
		g.log.Warn().Str("theme", raw).Msg("unknown stored theme, using light")
		return ThemeLight, nil
	}
	return raw, nil
}

// SaveTheme stores the theme name.
func (g *Gateway) SaveTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("save theme: unknown theme %q", theme)
	}
	if err := g.kv.Set(ctx, ThemeKey, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Clear removes every stored value.
func (g *Gateway) Clear(ctx context.Context) error {
	for _, key := range []string{ClientsKey, ThemeKey} {
		if err := g.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}
	return nil
}

// EncodeClients serializes the roster as a JSON array.
func EncodeClients(clients []*domain.Client) ([]byte, error) {
	if clients == nil {
		clients = []*domain.Client{}
	}
	return json.Marshal(clients)
}

// DecodeClients parses a JSON array of clients. Individual records that
// cannot be parsed or fail validation are skipped and logged; a payload
// that is not an array is an error.
func DecodeClients(data []byte, log zerolog.Logger) ([]*domain.Client, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}

	clients := make([]*domain.Client, 0, len(items))
	for i, item := range items {
		c := &domain.Client{}
		if err := json.Unmarshal(item, c); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping unreadable client record")
			continue
		}
		if err := c.Validate(); err != nil {
			log.Warn().Err(err).Int("index", i).Str("client_id", c.ID).Msg("skipping invalid client record")
			continue
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// ExportJSON writes the roster as an indented JSON array, the same shape
// that is stored under ClientsKey.
func ExportJSON(w io.Writer, clients []*domain.Client) error {
	if clients == nil {
		clients = []*domain.Client{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(clients); err != nil {
		return fmt.Errorf("export clients: %w", err)
	}
	return nil
}

// ImportJSON reads a JSON array of clients, such as a dump of the browser
// version's storage. Unusable records are skipped like on load.
func ImportJSON(r io.Reader, log zerolog.Logger) ([]*domain.Client, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("import clients: %w", err)
	}
	return DecodeClients(data, log)
}
