package common

// UnknownStr is the placeholder for a name that could not be determined.
const UnknownStr = "Unknown"
