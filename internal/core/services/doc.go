// Package services implements the core business logic for Hermes.
//
// Services sit between the driving ports (what the CLI calls) and the
// driven ports (what the adapters implement). The reconciliation
// planner lives here as a pure function; the workspace service wires
// page persistence to best-effort index reconciliation.
package services
