package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/diatonic/internal/infra/runstore"
	"github.com/aalvaropc/diatonic/internal/infra/workspacefinder"
	"github.com/aalvaropc/diatonic/internal/infra/yamlsheet"
	"github.com/aalvaropc/diatonic/internal/ports"
	"github.com/aalvaropc/diatonic/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := usecase.NewInitWorkspace(deps.WorkspaceInitializer).Execute(root, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadSheets(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return sheetsLoadedMsg{root: root, err: err}
		}

		loader := yamlsheet.NewLoader(
			yamlsheet.WithSheetsDir(cfg.Paths.SheetsDir),
		)

		refs, err := loader.ListSheets(root)
		return sheetsLoadedMsg{root: root, refs: refs, err: err}
	}
}

func listenRunner(ch <-chan sheetRunDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return sheetRunDoneMsg{err: errors.New("runner channel closed")}
		}
		return msg
	}
}

func startSheetRunAsync(
	workspaceRoot, sheetPath string,
	engine ports.IntervalEngine,
	log *slog.Logger,
	debug bool,
) (chan sheetRunDoneMsg, tea.Cmd) {
	ch := make(chan sheetRunDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("tui.sheet.start",
			"workspace", workspaceRoot,
			"sheet_path", sheetPath,
			"debug", debug,
		)

		cfg, err := workspacefinder.LoadConfig(workspaceRoot)
		if err != nil {
			log.Error("tui.sheet.load_config.failed", "err", err)
			ch <- sheetRunDoneMsg{err: err}
			return
		}

		loader := yamlsheet.NewLoader(
			yamlsheet.WithSheetsDir(cfg.Paths.SheetsDir),
		)
		store := runstore.NewJSONStore(workspaceRoot, cfg, runstore.WithIndex(true))

		uc := usecase.NewRunSheet(loader, engine, store,
			usecase.WithRunLogger(log),
			usecase.WithDefaultDirection(cfg.Defaults.Direction),
		)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		run, id, execErr := uc.Execute(ctx, sheetPath, nil)
		if execErr != nil {
			log.Error("tui.sheet.failed", "err", execErr, "saved_id", id)
		} else {
			log.Info("tui.sheet.ok", "saved_id", id)
		}

		for _, qr := range run.Results {
			if qr.Error != nil && qr.Failed() {
				log.Warn("query.error",
					"name", qr.Name,
					"op", string(qr.Op),
					"kind", string(qr.Error.Kind),
					"message", qr.Error.Message,
				)
			}
		}

		ch <- sheetRunDoneMsg{run: run, id: id, err: execErr}
	}()

	return ch, listenRunner(ch)
}
