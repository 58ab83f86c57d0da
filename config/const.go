package config

import "strings"

// AppVersion is the version of the application, set at build time.
var AppVersion = "dev"

// AppName is the name of the application.
const AppName = "Widgets"

// AppID is the unique identifier used for the preferences store.
const AppID = "org.ouaf.widgets"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// Environment variables read from the process environment or a .env file.
const (
	TuningEnvVar    = "WIDGETS_TUNING"     // Path to a YAML tuning file
	FaceModelEnvVar = "WIDGETS_FACE_MODEL" // Path to a pigo facefinder cascade
)
