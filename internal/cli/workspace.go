package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/infra/runstore"
	"github.com/aalvaropc/diatonic/internal/infra/workspacefinder"
	"github.com/aalvaropc/diatonic/internal/infra/yamlsheet"
	"github.com/aalvaropc/diatonic/internal/interval"
	"github.com/aalvaropc/diatonic/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	sheets ports.SheetLoader
	engine ports.IntervalEngine
	store  ports.ArtifactStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	loader := yamlsheet.NewLoader(
		yamlsheet.WithSheetsDir(cfg.Paths.SheetsDir),
	)

	store := runstore.NewJSONStore(root, cfg, runstore.WithIndex(true))

	return &workspaceCtx{
		root:   root,
		cfg:    cfg,
		sheets: loader,
		engine: interval.Default(),
		store:  store,
	}, nil
}

// loadSettings returns the workspace config when one is given or found and
// the defaults otherwise. An explicit workspace must have a valid config.
func loadSettings(workspaceFlag string) (domain.Config, string, error) {
	if strings.TrimSpace(workspaceFlag) != "" {
		root, err := resolveWorkspaceRoot(workspaceFlag)
		if err != nil {
			return domain.Config{}, "", err
		}
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return domain.Config{}, "", err
		}
		return cfg, root, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return domain.DefaultConfig(), "", nil
	}
	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		return domain.DefaultConfig(), "", nil
	}
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return domain.Config{}, "", err
	}
	return cfg, root, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `diatonic init`): %w", wd, err)
	}
	return root, nil
}

func resolveSheetPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("sheet is required")
	}

	// If arg looks like a path (contains separators), resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	sheetsDir := filepath.Join(ws.root, ws.cfg.Paths.SheetsDir)

	// "demo.yaml" is a file under the sheets dir.
	if yamlsheet.HasYAMLExt(in) {
		p := filepath.Join(sheetsDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	// "demo" may be demo.yaml or demo.yml.
	p1 := filepath.Join(sheetsDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(sheetsDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	// As a last resort: match by sheet "name" field.
	refs, err := ws.sheets.ListSheets(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", &domain.OpError{
		Op:   "cli.resolve_sheet",
		Kind: domain.KindNotFound,
		Path: sheetsDir,
		Err:  fmt.Errorf("sheet %q: %w", in, domain.ErrNotFound),
	}
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
