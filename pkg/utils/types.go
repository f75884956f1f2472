package utils

// Constants
const (
	DATE_LAYOUT = "02 Jan 2006 15:04"
)
