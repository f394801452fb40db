// Package database handles the inventory database connection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration.
//
// # Connect
//
// Connect establishes the connection, configures the pool, and verifies it
// with a ping. It also enables GORM's error translation, which the parts
// store depends on: a duplicate business reference raised by the unique index
// comes back as gorm.ErrDuplicatedKey, which is the authoritative guard
// against two imports racing on the same reference.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
