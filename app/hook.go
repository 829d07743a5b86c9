package app

import (
	"errors"
	"log/slog"
)

// Close releases the event bus and the production connection. Call it after Run returns.
func (app *App) Close() error {
	app.Logger.Info("Shutting down broadcast driver")
	if err := app.closeResources(); err != nil {
		app.Logger.Error("Error during shutdown", slog.Any("error", err))
		return err
	}
	app.Logger.Info("Broadcast driver stopped")
	return nil
}

func (app *App) closeResources() error {
	var errs []error
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.Queue != nil {
		errs = append(errs, app.Queue.Close())
	} else if app.Transport != nil {
		errs = append(errs, app.Transport.Close())
	}
	return errors.Join(errs...)
}
