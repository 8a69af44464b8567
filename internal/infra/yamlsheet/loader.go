package yamlsheet

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/infra/config"
	"github.com/aalvaropc/diatonic/internal/ports"
)

type Loader struct {
	sheetsDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{sheetsDir: "sheets"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithSheetsDir(dir string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(dir) != "" {
			l.sheetsDir = dir
		}
	}
}

var _ ports.SheetLoader = (*Loader)(nil)

func (l *Loader) LoadSheet(path string) (domain.Sheet, error) {
	return config.LoadSheet(path)
}

// ListSheets returns every .yaml/.yml file under the sheets dir, sorted by name.
// Files whose name field cannot be read are listed under their base name.
func (l *Loader) ListSheets(root string) ([]domain.SheetRef, error) {
	dir := filepath.Join(root, l.sheetsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlsheet.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.SheetRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !HasYAMLExt(name) {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := config.ReadSheetName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.SheetRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// HasYAMLExt reports whether s ends in .yaml or .yml (case-insensitive).
func HasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}
