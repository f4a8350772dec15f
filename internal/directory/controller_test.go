package directory_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/iris/internal/directory"
	"github.com/UnknownOlympus/iris/internal/metrics"
	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(table models.Table) []string {
	result := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		result = append(result, row.Name)
	}

	return result
}

func newController(t *testing.T, location string) (*directory.Controller, *metrics.Metrics) {
	t.Helper()

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	settings := directory.Settings{
		Offices:     testOffices(),
		EmailDomain: "company.com",
		Location:    location,
	}

	return directory.NewController(slog.New(slog.DiscardHandler), appMetrics, settings), appMetrics
}

func TestController_BeforeDataLoaded(t *testing.T) {
	t.Parallel()

	ctrl, _ := newController(t, "Location 1")
	view := ctrl.View()

	assert.False(t, ctrl.Loaded())
	assert.Empty(t, view.Left.Rows)
	assert.Empty(t, view.Right.Rows)
	require.NotNil(t, view.Office)
	assert.Equal(t, "LOCATION 1 Contact Info", view.Office.Title)
}

func TestController_OnDataLoaded(t *testing.T) {
	t.Parallel()

	ctrl, appMetrics := newController(t, "")
	view := ctrl.OnDataLoaded(directory.NewStore(scenarioRecords()))

	assert.True(t, ctrl.Loaded())
	assert.Equal(t, []string{"Bo Lee", "Ann"}, names(view.Left))
	assert.Equal(t, []string{"Cy"}, names(view.Right))
	assert.Nil(t, view.Office)
	assert.Equal(t, view, ctrl.View())
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Renders.WithLabelValues(directory.TriggerDataLoaded)), 0)
}

func TestController_OnDataLoadedUsesInitialLocation(t *testing.T) {
	t.Parallel()

	ctrl, _ := newController(t, "Location 1")
	view := ctrl.OnDataLoaded(directory.NewStore(scenarioRecords()))

	assert.Equal(t, []string{"Ann"}, names(view.Left))
	assert.Equal(t, []string{"Cy"}, names(view.Right))
	require.NotNil(t, view.Office)
	assert.Equal(t, "123 Main St, City, State, ZIP", view.Office.Address)
}

func TestController_OnLocationChanged(t *testing.T) {
	t.Parallel()

	ctrl, _ := newController(t, "")
	ctrl.OnDataLoaded(directory.NewStore(scenarioRecords()))
	ctrl.OnSearchChanged("lee")

	view := ctrl.OnLocationChanged("Location 1")

	assert.Empty(t, ctrl.Search(), "location change clears the search")
	assert.Equal(t, "Location 1", ctrl.Location())
	assert.Equal(t, "Location 1", view.Location)
	assert.Equal(t, []string{"Ann"}, names(view.Left))
	assert.Equal(t, []string{"Cy"}, names(view.Right))
	require.NotNil(t, view.Office)
	assert.Equal(t, "(123) 456-7890", view.Office.PhoneNumber)
}

func TestController_OnSearchChanged(t *testing.T) {
	t.Parallel()

	ctrl, _ := newController(t, "")
	ctrl.OnDataLoaded(directory.NewStore(scenarioRecords()))
	ctrl.OnLocationChanged("Location 1")

	view := ctrl.OnSearchChanged("10")

	assert.Equal(t, "Location 1", ctrl.Location(), "search keeps the selected location")
	assert.Equal(t, []string{"Bo Lee", "Ann"}, names(view.Left))
	assert.Equal(t, []string{"Cy"}, names(view.Right))
	assert.Nil(t, view.Office, "office panel is cleared while searching")

	view = ctrl.OnSearchChanged("")

	assert.Equal(t, []string{"Ann"}, names(view.Left))
	require.NotNil(t, view.Office, "clearing the search restores the location panel")
	assert.Equal(t, "LOCATION 1 Contact Info", view.Office.Title)
}

func TestController_UnknownLocation(t *testing.T) {
	t.Parallel()

	ctrl, _ := newController(t, "")
	ctrl.OnDataLoaded(directory.NewStore(scenarioRecords()))

	view := ctrl.OnLocationChanged("Location 99")

	assert.Nil(t, view.Office)
	assert.Empty(t, view.Left.Rows)
	assert.Empty(t, view.Right.Rows)
	assert.Equal(t, "Extensions", view.Left.Heading)
}

func TestController_SessionsShareStore(t *testing.T) {
	t.Parallel()

	store := directory.NewStore(scenarioRecords())
	settings := directory.Settings{Offices: testOffices()}
	logger := slog.New(slog.DiscardHandler)

	first := directory.NewSession(logger, nil, settings, store)
	second := directory.NewSession(logger, nil, settings, store)

	first.OnLocationChanged("Location 2")

	assert.Equal(t, []string{"Bo Lee"}, names(first.View().Left))
	assert.Equal(t, []string{"Bo Lee", "Ann"}, names(second.View().Left))
	assert.Equal(t, 3, store.Len())
}
