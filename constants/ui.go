package constants

// Field labels in display order
var FieldLabels = [4]string{"DAYS", "HOURS", "MINUTES", "SECONDS"}

// UI Layout Constants
const (
	// FieldSeparator is drawn between columns
	FieldSeparator = ":"

	// ColumnGap is the blank cells on each side of a separator
	ColumnGap = 1

	// ExpiredBanner replaces the title once the countdown reaches its target
	ExpiredBanner = "EXPIRED"

	// HelpText is shown on the bottom row
	HelpText = "q / esc to quit"
)
