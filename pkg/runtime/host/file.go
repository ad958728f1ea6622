package host

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/timeline-report/pkg/services/command"
	"github.com/rs/zerolog"
)

// FileHost stands in for the CAD application when running outside of it:
// the feature dump comes from a file or stream and message boxes go to a writer.
type FileHost struct {
	document string
	dump     func() (io.ReadCloser, error)
	messages io.Writer
}

func NewFileHost(document, dumpPath string, messages io.Writer) *FileHost {
	return &FileHost{
		document: document,
		dump: func() (io.ReadCloser, error) {
			return os.Open(dumpPath)
		},
		messages: messages,
	}
}

// NewStreamHost reads the dump from r once, e.g. from stdin
func NewStreamHost(document string, r io.Reader, messages io.Writer) *FileHost {
	return &FileHost{
		document: document,
		dump: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
		messages: messages,
	}
}

func (h *FileHost) ActiveDocumentName(_ context.Context) (string, error) {
	if h.document == "" {
		return "", fmt.Errorf("no active document")
	}
	return h.document, nil
}

func (h *FileHost) ExecuteTextCommand(ctx context.Context, cmd string) (string, error) {
	cmd = strings.TrimSpace(cmd)
	if target, ok := strings.CutPrefix(cmd, command.DisplayCommand+" "); ok {
		return "", h.MessageBox(ctx, "Report available at "+target)
	}
	if cmd != command.DumpFeaturesCommand {
		zerolog.Ctx(ctx).Debug().Str("text_command", cmd).Msg("ignoring unsupported text command")
		return "", nil
	}

	rc, err := h.dump()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (h *FileHost) MessageBox(_ context.Context, message string) error {
	if h.messages == nil {
		return nil
	}
	_, err := fmt.Fprintln(h.messages, message)
	return err
}
