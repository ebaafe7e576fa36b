// Package operation provides the shared framework the Zoho Expense
// integration plugs into.
//
// The framework handles:
//   - The Connector contract: a named integration executing named operations
//   - The Registry for looking up connectors by "connector.operation" reference
//   - The per-item execution loop with continue-on-failure semantics (RunItems)
//   - The Error taxonomy shared by every layer above the transport
//   - Prometheus metrics for API requests, pages and items
//
// Protocol concerns live in the transport subpackage; the helpers every API
// integration shares (URL building, response parsing, operation metadata) live
// in the api subpackage.
package operation
