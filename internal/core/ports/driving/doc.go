// Package driving defines the driving ports (primary interfaces) for the
// Hermes workspace engine. These are the operations the CLI and any other
// front end invoke on the core.
package driving
