package directory

import (
	"strings"

	"github.com/UnknownOlympus/iris/internal/models"
)

// ResolveInfo returns the contact panel for location, or nil when location is
// empty or not a configured office.
func ResolveInfo(offices models.Offices, location string) *models.OfficePanel {
	if location == "" {
		return nil
	}

	office, ok := offices[location]
	if !ok {
		return nil
	}

	return &models.OfficePanel{
		Location:    location,
		Title:       PanelTitle(location),
		Address:     office.Address,
		PhoneNumber: office.PhoneNumber,
		CallTarget:  "tel:" + office.PhoneNumber,
	}
}

// PanelTitle turns a location key into the panel heading: "north-wing" becomes "NORTH WING Contact Info".
func PanelTitle(location string) string {
	return strings.ToUpper(strings.ReplaceAll(location, "-", " ")) + " Contact Info"
}
