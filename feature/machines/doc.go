// Package machines serves the machine reference data that parts declare
// compatibility against. Machines are managed out of band; this feature only
// reads them.
package machines
