// Package scheduler runs the bot's background maintenance: periodic
// refreshes of the active-schedule summary so the overview recovers from
// missed or failed updates.
package scheduler
