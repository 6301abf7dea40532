// Package clipboard provides access to the system clipboard for rendered trees.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies rendered output to the system clipboard.
type Copier interface {
	Copy(renderedText string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes the rendered text to the system clipboard.
func (service *Service) Copy(renderedText string) error {
	return clipboard.WriteAll(renderedText)
}

var _ Copier = (*Service)(nil)
