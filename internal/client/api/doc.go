// Package api implements the JSON/HTTP client for the library backend.
// Auth endpoints serve the session store; the generic resource operations
// serve the management screens, which attach their own endpoint paths and
// interpret their own data shapes.
package api
