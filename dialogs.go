package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/pohani/3dvisual/pkg/workbench"
)

// Compile-time interface checks.
var (
	_ workbench.Opener    = dialogs{}
	_ workbench.Saver     = dialogs{}
	_ workbench.Confirmer = dialogs{}
)

var geometryFilters = []runtime.FileFilter{
	{DisplayName: "Geometry files (*.dat)", Pattern: "*.dat"},
	{DisplayName: "All files", Pattern: "*"},
}

// Button labels for the collision prompt.
const (
	buttonExport = "Export"
	buttonCancel = "Cancel"
)

// dialogs implements the workbench collaborators with native Wails dialogs.
// ctx must be the context passed to App.startup.
type dialogs struct{}

func (dialogs) Open(ctx context.Context) (string, string, error) {
	path, err := runtime.OpenFileDialog(ctx, runtime.OpenDialogOptions{
		Title:   "Import geometry",
		Filters: geometryFilters,
	})
	if err != nil {
		return "", "", fmt.Errorf("open dialog: %w", err)
	}
	if path == "" {
		return "", "", workbench.ErrCanceled
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return filepath.Base(path), string(b), nil
}

func (dialogs) Save(ctx context.Context, filename string, payload []byte) error {
	path, err := runtime.SaveFileDialog(ctx, runtime.SaveDialogOptions{
		Title:           "Export geometry",
		DefaultFilename: filename,
		Filters:         geometryFilters,
	})
	if err != nil {
		return fmt.Errorf("save dialog: %w", err)
	}
	if path == "" {
		return workbench.ErrCanceled
	}
	return os.WriteFile(path, payload, 0o644)
}

func (dialogs) Confirm(ctx context.Context, title, message string) (bool, error) {
	answer, err := runtime.MessageDialog(ctx, runtime.MessageDialogOptions{
		Type:          runtime.QuestionDialog,
		Title:         title,
		Message:       message,
		Buttons:       []string{buttonExport, buttonCancel},
		DefaultButton: buttonExport,
		CancelButton:  buttonCancel,
	})
	if err != nil {
		return false, fmt.Errorf("message dialog: %w", err)
	}
	// Some platforms ignore custom buttons and answer Yes/No.
	return answer == buttonExport || answer == "Yes", nil
}
