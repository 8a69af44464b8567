package tui

import "github.com/aalvaropc/diatonic/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type sheetsLoadedMsg struct {
	root string
	refs []domain.SheetRef
	err  error
}

type sheetRunDoneMsg struct {
	run domain.RunResult
	id  string
	err error
}
