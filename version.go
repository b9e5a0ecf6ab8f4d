package converse

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/vitaehq/converse.Version=...".
var Version = "0.3.0"
