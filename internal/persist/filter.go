package persist

import (
	"log/slog"

	"github.com/idilsaglam/todochat/internal/model"
)

// SaveFilter remembers the last selected todo filter.
func (b *Bridge) SaveFilter(f model.Filter) error {
	err := b.kv.Set(KeySelectedTab, f.String())
	b.observe(KeySelectedTab, err)
	return err
}

// LoadFilter returns the remembered filter, or FilterAll.
func (b *Bridge) LoadFilter() model.Filter {
	raw, ok, err := b.kv.Get(KeySelectedTab)
	if err != nil || !ok {
		return model.FilterAll
	}
	f, err := model.ParseFilter(raw)
	if err != nil {
		b.log.Warn("Ignoring saved filter", slog.String("error", err.Error()))
		return model.FilterAll
	}
	return f
}
