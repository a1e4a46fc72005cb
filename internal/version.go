package internal

// Version is the poai release version.
const Version = "0.1.0"
