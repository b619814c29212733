// Package cli implements the interactive terminal client: screens are
// addressed by route paths, every navigation passes through the route
// guard, and the REPL dispatches commands to screens. Screens catch their
// own request errors and render them locally; only the session store
// touches the persisted credentials.
package cli
