// Package cache holds the two process-scoped caches the streaming layer
// depends on: the credential cache (tenant tokens with expiry and periodic
// sweep) and the bounded client cache (reusable API client handles with LRU
// eviction).
//
// Both caches are explicit instances owned by the runtime rather than package
// globals, so tests and multi-tenant embedders can run several isolated
// instances in one process.
package cache
