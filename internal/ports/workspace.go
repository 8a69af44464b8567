package ports

import "github.com/aalvaropc/diatonic/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
