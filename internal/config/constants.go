package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./booknotes.db"

	// DefaultExportDir is where the export command writes Markdown files
	DefaultExportDir = "./markdown"
)
