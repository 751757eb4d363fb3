package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/artoolbox/pkg/stl"
	"github.com/philipparndt/artoolbox/pkg/watcher"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// loadReference parses the reference model
func loadReference(path string) (*stl.Model, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".stl" {
		return nil, errors.Errorf("unsupported file type: %s (expected .stl)", ext)
	}
	model, err := stl.Parse(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load reference model")
	}
	return model, nil
}

// setupFileWatcher reloads the reference model whenever it changes on disk
func (app *App) setupFileWatcher(ctx context.Context) error {
	fw, err := watcher.New(func(changed string) {
		app.logger.Info("reference changed", zap.String("path", changed))
		select {
		case app.Reference.changed <- struct{}{}:
		default:
		}
	}, watcher.WithDebounce(500*time.Millisecond), watcher.WithLogger(app.logger))
	if err != nil {
		return err
	}

	if err := fw.Add(app.Reference.path); err != nil {
		fw.Close()
		return err
	}

	go func() {
		if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.logger.Warn("file watcher stopped", zap.Error(err))
		}
	}()
	app.Reference.fileWatcher = fw
	app.logger.Info("watching reference for changes", zap.String("path", app.Reference.path))
	return nil
}

// pollReference starts a background reload when the watcher reported a change
func (app *App) pollReference() {
	select {
	case <-app.Reference.changed:
	default:
		return
	}
	if app.Reference.isLoading {
		// Picked up again after the running load finishes
		select {
		case app.Reference.changed <- struct{}{}:
		default:
		}
		return
	}

	app.Reference.isLoading = true
	app.Reference.loadingStartTime = time.Now()
	path := app.Reference.path

	// Parse in background; the mesh must be created on the main thread
	go func() {
		model, err := loadReference(path)
		app.Reference.loaded <- loadResult{model: model, err: err}
	}()
}

// applyLoadedReference swaps in a reloaded model (must be called on main thread)
func (app *App) applyLoadedReference() {
	var res loadResult
	select {
	case res = <-app.Reference.loaded:
	default:
		return
	}
	app.Reference.isLoading = false

	if res.err != nil {
		app.logger.Error("reload failed", zap.Error(res.err))
		app.setStatus("Reload failed")
		return
	}

	app.Reference.model = res.model
	app.Reference.mesh.replace(modelVertices(res.model), referenceColor)

	elapsed := time.Since(app.Reference.loadingStartTime)
	app.logger.Info("reference reloaded",
		zap.Int("triangles", res.model.TriangleCount()),
		zap.Duration("elapsed", elapsed))
	app.setStatus("Reference reloaded")
}
