package promptsicle

// Version is the module's semantic version.
const Version = "0.1.0"
