package version

// Version is the kard release, overridden at build time with
// -ldflags "-X github.com/Daskott/kard/version.Version=x.y.z".
var Version = "0.1.0"
