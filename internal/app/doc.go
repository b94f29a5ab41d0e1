// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution lifecycle: loading a sheet,
// then checking, exporting, printing or editing it, decoupled from any
// specific entrypoint like a CLI.
package app
