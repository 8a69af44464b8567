package ports

import "github.com/aalvaropc/diatonic/internal/domain"

// ArtifactStore persists sheet runs for later review.
type ArtifactStore interface {
	SaveRun(run domain.RunResult) (id string, err error)
}
