package plots

import "errors"

// ErrUnknownPlot is returned when a selection targets a plot that is not
// in the catalog.
var ErrUnknownPlot = errors.New("plots: unknown plot")
