// Package clipboard delivers formatted snapshots to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no clipboard utility exists on this system.
var ErrClipboardUnavailable = errors.New("system clipboard unavailable")

const copyFailedMessageFormat = "copy to clipboard: %w"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	unsupported func() bool
	write       func(text string) error
}

// NewService constructs a clipboard service backed by the system clipboard.
func NewService() *Service {
	return &Service{
		unsupported: func() bool { return clipboard.Unsupported },
		write:       clipboard.WriteAll,
	}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported != nil && service.unsupported() {
		return ErrClipboardUnavailable
	}
	if writeError := service.write(text); writeError != nil {
		return fmt.Errorf(copyFailedMessageFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
