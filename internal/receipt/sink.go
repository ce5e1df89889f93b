package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

// Sink materializes a receipt document. The generator never produces
// bytes itself; the sink owns the output format and destination.
type Sink interface {
	Save(doc domain.ReceiptDocument) (string, error)
}

// FileSink renders documents as plain text files named
// receipt_<merchant>_<timestamp>.txt in the configured directory.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

func (f *FileSink) Save(doc domain.ReceiptDocument) (string, error) {
	name := fmt.Sprintf("receipt_%s_%s.txt",
		sanitize(doc.Header.MerchantName),
		doc.Header.Timestamp.Format("20060102-150405"))
	path := filepath.Join(f.dir, name)

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipt dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderText(doc)), 0o644); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
