// Package cli implements the interactive Housekeeper client: a line-based
// REPL over the offline-first services, an online status watcher that kicks
// the sync scheduler on reconnect, and a printer for pushed notifications.
package cli
