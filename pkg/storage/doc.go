// Package storage provides persistent storage functionality for the flight roster bot.
// It uses BadgerDB as the embedded database and stores records as JSON values.
package storage
