// Package driven defines the driven ports (secondary adapters' interfaces)
// for the Hermes workspace engine.
//
// Driven ports are interfaces the core depends on and adapters implement:
// page persistence on the filesystem, the derived SQLite index, the
// configuration store and the managed worker process.
//
// # Import Rules
//
//   - Can Import: domain, standard library
//   - Cannot Import: adapters, services
package driven
