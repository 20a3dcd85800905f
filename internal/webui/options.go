package webui

import "horaris.manresa.cat/internal/appconf"

// Options selects the page variant.
type Options struct {
	// ExpandableTrips hides each route behind a toggle button.
	ExpandableTrips bool
	// ServiceFilter shows one service type per panel, chosen with buttons.
	ServiceFilter bool
	// StopList adds an ordered stop-by-stop list under each route.
	StopList bool
	// Table adds a trips × stops table per service type.
	Table bool
}

func OptionsFromConfig(config appconf.Config) Options {
	return Options{
		ExpandableTrips: config.ExpandableTrips,
		ServiceFilter:   config.ServiceFilter,
		StopList:        config.StopList,
		Table:           config.Table,
	}
}
