package directory

import (
	"log/slog"
	"time"

	"github.com/UnknownOlympus/iris/internal/metrics"
	"github.com/UnknownOlympus/iris/internal/models"
)

// Triggers reported to metrics and logs.
const (
	TriggerDataLoaded      = "data_loaded"
	TriggerLocationChanged = "location_changed"
	TriggerSearchChanged   = "search_changed"
)

// Settings is the static configuration of a directory.
type Settings struct {
	Offices     models.Offices
	EmailDomain string
	// Location is the location selected before any data arrives.
	Location string
}

// Controller keeps the display state of one directory view and re-renders it on
// every trigger. It is not safe for concurrent use; share the Store instead.
type Controller struct {
	log      *slog.Logger
	metrics  *metrics.Metrics
	settings Settings

	store    *Store
	loaded   bool
	location string
	search   string
	view     models.View
}

// NewController creates a controller with nothing loaded yet.
func NewController(log *slog.Logger, appMetrics *metrics.Metrics, settings Settings) *Controller {
	ctrl := &Controller{
		log:      log,
		metrics:  appMetrics,
		settings: settings,
		location: settings.Location,
	}
	ctrl.view = ctrl.render()

	return ctrl
}

// NewSession creates a controller that has already received store.
func NewSession(log *slog.Logger, appMetrics *metrics.Metrics, settings Settings, store *Store) *Controller {
	ctrl := NewController(log, appMetrics, settings)
	ctrl.OnDataLoaded(store)

	return ctrl
}

func (c *Controller) initLogger(opn string) *slog.Logger {
	return c.log.With(
		slog.String("op", opn),
		slog.String("division", "directory"),
	)
}

// OnDataLoaded installs the store and renders it with the current location and no search.
func (c *Controller) OnDataLoaded(store *Store) models.View {
	c.store = store
	c.loaded = true
	c.search = ""

	return c.update(TriggerDataLoaded)
}

// OnLocationChanged selects a new location and clears the search term.
func (c *Controller) OnLocationChanged(location string) models.View {
	c.location = location
	c.search = ""

	return c.update(TriggerLocationChanged)
}

// OnSearchChanged replaces the search term. The location stays selected but is
// ignored while the term is non-empty.
func (c *Controller) OnSearchChanged(term string) models.View {
	c.search = term

	return c.update(TriggerSearchChanged)
}

// View returns the last rendered view.
func (c *Controller) View() models.View {
	return c.view
}

// Location returns the selected location.
func (c *Controller) Location() string {
	return c.location
}

// Search returns the current raw search term.
func (c *Controller) Search() string {
	return c.search
}

// Loaded reports whether data has been received.
func (c *Controller) Loaded() bool {
	return c.loaded
}

func (c *Controller) update(trigger string) models.View {
	const opn = "Controller.update"
	log := c.initLogger(opn)

	startTime := time.Now()
	c.view = c.render()

	if c.metrics != nil {
		c.metrics.Renders.WithLabelValues(trigger).Inc()
		c.metrics.RenderDuration.WithLabelValues("view").Observe(time.Since(startTime).Seconds())
	}

	log.Debug("Directory rendered",
		"trigger", trigger,
		"location", c.location,
		"search", c.search,
		"left", len(c.view.Left.Rows),
		"right", len(c.view.Right.Rows),
		"office", c.view.Office != nil,
	)

	return c.view
}

// render is a full re-render of the view from the current state.
func (c *Controller) render() models.View {
	subset := SelectSubset(c.store.All(), c.location, c.search)
	left, right := Present(subset, c.settings.EmailDomain)

	panelLocation := c.location
	if NormalizeSearch(c.search) != "" {
		panelLocation = ""
	}

	return models.View{
		Location: c.location,
		Search:   c.search,
		Left:     left,
		Right:    right,
		Office:   ResolveInfo(c.settings.Offices, panelLocation),
	}
}
