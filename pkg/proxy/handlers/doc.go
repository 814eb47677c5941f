// Package handlers contains the HTTP handlers mounted on the data-plane
// listener: the edge handler that routes tenant traffic, and the
// authenticated control-plane API for managing bindings.
package handlers
