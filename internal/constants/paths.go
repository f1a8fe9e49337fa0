package constants

// DefaultEnvPath is the default path to the .env file
const DefaultEnvPath = "./.env"

// AppLogFileName is the application log file inside the logging folder
const AppLogFileName = "appLog.txt"

// PurgeLogFileName is the activity (purge) log file inside the logging folder
const PurgeLogFileName = "purgeLog.txt"

// ResourcesFolder holds the bundled notification icons, relative to the executable
const ResourcesFolder = "resources"

// Notification icons
const (
	IconGeneral = "trashcan128.png"
	IconOK      = "trashcan-ok128.png"
	IconSkip    = "trashcan-skipped128.png"
	IconError   = "trashcan-error128.png"
)
