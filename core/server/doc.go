// Package server holds the HTTP server configuration.
//
// The actual Fiber application is constructed by the process entry point
// (cmd/start.go); this package only defines the configuration surface so
// core/config can bind it from the environment.
package server
