// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the operations the command line exposes
// (listing, classifying and describing scripts, resolving their scopes),
// decoupled from any specific entrypoint like a CLI.
package app
