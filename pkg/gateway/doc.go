// Package gateway is the command surface the GUI shell talks to: a WebSocket
// JSON-RPC server mapping external invocations onto session manager
// operations and streaming print output back as events while a script runs.
package gateway
