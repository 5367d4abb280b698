package docsink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/example/akura-order-service/internal/domain"
)

// ArchiveSink writes each delivered document into a directory. Filenames
// carry a uuid so regenerating a receipt never overwrites the archived one.
type ArchiveSink struct {
	Dir string
}

func (s *ArchiveSink) Deliver(_ context.Context, orderID, document string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("archive dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.html", orderID, uuid.NewString())
	if err := os.WriteFile(filepath.Join(s.Dir, name), []byte(document), 0o644); err != nil {
		return fmt.Errorf("archive receipt %s: %w", orderID, err)
	}
	return nil
}

var _ domain.DocumentSink = (*ArchiveSink)(nil)

// Discard drops documents. Used when archival is disabled and in tests.
type Discard struct{}

func (Discard) Deliver(context.Context, string, string) error { return nil }

var _ domain.DocumentSink = Discard{}
