// Package cea holds shared metadata for the create-express-app CLI.
package cea

// Version is the current release of create-express-app.
var Version = "1.4.0"
