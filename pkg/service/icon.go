package service

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/integrations"
)

// imageFetcher is the part of integrations.Client adapters need for icons.
type imageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

var _ imageFetcher = (*integrations.Client)(nil)

// fetchIcon embeds the icon at url. A missing or broken icon never fails
// the entity; the layout draws a placeholder instead.
func fetchIcon(ctx context.Context, f imageFetcher, logger *log.Logger, url string) []byte {
	if url == "" {
		return nil
	}
	data, err := f.FetchImage(ctx, url)
	if err != nil {
		logger.Debug("icon unavailable", "url", url, "error", err)
		return nil
	}
	return data
}
