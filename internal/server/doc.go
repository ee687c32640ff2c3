// Package server provides the MCP server context, health checks, and the
// dedicated metrics server for the todoist-mcp application.
//
// # Key Components
//
// ServerContext manages Todoist API clients with lazy initialization and
// caching. It supports multiple accounts: each account resolves its API token
// from the environment (TODOIST_API_TOKEN, TODOIST_API_TOKEN_WORK, ...), and
// clients are created on first use and cached behind a mutex. The context
// also carries the metrics recorder and audit logger shared by all tools.
//
// HealthChecker exposes Kubernetes-style probes (/healthz, /readyz,
// /healthz/detailed) that reflect readiness and shutdown state.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from the main application traffic.
package server
