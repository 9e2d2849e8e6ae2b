// Package config provides configuration loading and defaults for taskwatch.
package config

// DefaultConfigDir is the default location for taskwatch configuration.
const DefaultConfigDir = "~/.config/taskwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "taskwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix is the prefix for environment overrides, e.g. TASKWATCH_USER.
const EnvPrefix = "TASKWATCH"

// Streak modes.
const (
	// StreakLogged counts consecutive logged productive days; days with no
	// tasks are skipped.
	StreakLogged = "logged"

	// StreakCalendar additionally requires the counted days to be
	// contiguous on the calendar.
	StreakCalendar = "calendar"
)

// DefaultAnalytics holds the default analytics windows.
var DefaultAnalytics = Analytics{
	StatsWindowDays:  7,
	StreakWindowDays: 30,
}

// DefaultStreak holds the default streak semantics.
var DefaultStreak = Streak{
	Mode: StreakLogged,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color:       true,
	ChartWidth:  60,
	ChartHeight: 12,
}
