package tui

import (
	"log/slog"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/ports"
)

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer
	Engine               ports.IntervalEngine

	// DefaultDirection applies when the typed query omits asc|desc.
	DefaultDirection domain.Direction

	Logger *slog.Logger
	Debug  bool
}
