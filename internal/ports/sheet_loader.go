package ports

import "github.com/aalvaropc/diatonic/internal/domain"

// SheetLoader loads query sheets from a source (e.g., filesystem).
type SheetLoader interface {
	LoadSheet(path string) (domain.Sheet, error)
	ListSheets(root string) ([]domain.SheetRef, error)
}
