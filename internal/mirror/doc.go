// Package mirror publishes cell updates to a socket.io server so that a
// remote viewer can follow the sheet live. It is optional; the sheet works
// the same without it.
package mirror
