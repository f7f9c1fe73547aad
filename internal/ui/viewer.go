package ui

import "unishark/internal/domain"

// Viewer displays a selection manifest in an interactive TUI
type Viewer interface {
	View(manifest *domain.Manifest) error
}
