package handlers

import (
	"image"

	"labelr/internal/engine/compose"
	"labelr/internal/engine/symbol"
	"labelr/internal/engine/text"
	"labelr/internal/platform/config"
)

// Composer is the shared compose pipeline behind the label and page
// endpoints: resolve defaults, hit the cache, otherwise encode the symbol and
// merge it with the description.
type Composer struct {
	fonts    *text.Source
	cache    *compose.Cache
	defaults config.RenderConfig
}

func NewComposer(fonts *text.Source, cache *compose.Cache, defaults config.RenderConfig) *Composer {
	return &Composer{fonts: fonts, cache: cache, defaults: defaults}
}

func (c *Composer) applyDefaults(opts *compose.Options) {
	if opts.FontSize == 0 && c.defaults.FontSize > 0 {
		opts.FontSize = c.defaults.FontSize
	}
	if opts.SymbolWidthPx == 0 && c.defaults.SymbolWidthPx > 0 {
		opts.SymbolWidthPx = c.defaults.SymbolWidthPx
	}
}

func (c *Composer) composeLabel(code string, kindStr string, opts compose.Options) (image.Image, symbol.Kind, error) {
	kind, err := symbol.ParseKind(kindStr)
	if err != nil {
		return nil, "", err
	}

	c.applyDefaults(&opts)

	key := compose.Digest(code, string(kind), opts)
	if img, ok := c.cache.Get(key); ok {
		return img, kind, nil
	}

	sym, err := symbol.Generate(kind, code)
	if err != nil {
		return nil, "", err
	}

	img, err := compose.Compose(c.fonts, sym, opts)
	if err != nil {
		return nil, "", err
	}

	c.cache.Set(key, img)
	return img, kind, nil
}
