// Package schedule owns flight schedule records: lifecycle transitions,
// roster membership and the reference to each schedule's public display.
// Mutations to one schedule serialize on that schedule's own lock so that
// unrelated schedules never contend.
package schedule
