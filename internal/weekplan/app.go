// Package weekplan wires the planner's services together. Commands and
// the TUI consume App instead of cherry-picking raw dependencies.
package weekplan

import (
	"github.com/hay-kot/weekplan/internal/core/config"
	"github.com/hay-kot/weekplan/internal/core/reminder"
	"github.com/hay-kot/weekplan/internal/data/db"
)

// App is the central entry point for all weekplan operations.
type App struct {
	Planner    *PlannerService
	Dispatcher reminder.Dispatcher
	Config     *config.Config
	DB         *db.DB
}

// NewApp constructs an App from explicit dependencies.
func NewApp(planner *PlannerService, dispatcher reminder.Dispatcher, cfg *config.Config, database *db.DB) *App {
	return &App{
		Planner:    planner,
		Dispatcher: dispatcher,
		Config:     cfg,
		DB:         database,
	}
}
