// Package loopjet defines the domain-side contract for the Loopjet
// integration: the gateway port implemented by the HTTP adapter, the
// wire-shaped value objects exchanged with the remote service, and the
// error taxonomy every caller branches on.
package loopjet
