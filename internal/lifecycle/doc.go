// Package lifecycle holds the status rules shared by the marketplace entities:
// time-derived event status and the forward-only trade and report workflows.
// Everything here is pure; persistence lives in the feature repositories.
package lifecycle
