// Package main provides the entry point of GeStock, a web-based stock
// management application. The start command serves the fiber web interface
// backed by a gorm database; the other commands inspect the configuration,
// check the database and switch maintenance mode and feature toggles.
package main
