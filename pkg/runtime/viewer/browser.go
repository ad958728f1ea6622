package viewer

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
)

// Browser opens reports in the system's default browser
type Browser struct {
	open func(path string) error
}

func NewBrowser(stdout, stderr io.Writer) *Browser {
	if stdout != nil {
		browser.Stdout = stdout
	}
	if stderr != nil {
		browser.Stderr = stderr
	}
	return &Browser{open: browser.OpenFile}
}

func (b *Browser) Display(ctx context.Context, path string) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("opening report in browser")
	if err := b.open(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}
