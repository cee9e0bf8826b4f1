package ups

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// statusDatePattern matches an embedded MM/DD/YY or MM/DD/YYYY date inside a
// "SCHEDULED DELIVERY" status string.
var statusDatePattern = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`)

// formatDate converts a UPS YYYYMMDD date to "Month Day, Year". Strings that
// are too short or not purely numeric pass through unchanged.
func formatDate(dateStr string) string {
	if len(dateStr) < 8 || !digitsOnly.MatchString(dateStr) {
		return dateStr
	}
	month, err := strconv.Atoi(dateStr[4:6])
	if err != nil || month < 1 || month > 12 {
		return dateStr
	}
	day, err := strconv.Atoi(dateStr[6:8])
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%s %d, %s", monthNames[month-1], day, dateStr[:4])
}

// formatTime converts a UPS HHMMSS time to 12-hour "H:MM AM/PM". Hour 0 maps
// to 12 AM and hour 12 to 12 PM. Strings that are too short or not purely
// numeric pass through unchanged.
func formatTime(timeStr string) string {
	if len(timeStr) < 6 || !digitsOnly.MatchString(timeStr) {
		return timeStr
	}
	hour, err := strconv.Atoi(timeStr[:2])
	if err != nil || hour > 23 {
		return timeStr
	}
	minute := timeStr[2:4]

	amPM := "AM"
	if hour >= 12 {
		amPM = "PM"
	}
	hour12 := hour
	if hour12 > 12 {
		hour12 -= 12
	}
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, minute, amPM)
}

// formatStatusDate extracts an embedded MM/DD/YY(YY) date from a status
// string and renders it as "Month Day, Year". Two-digit years are assumed to
// be in the 21st century. Returns "" when no date is embedded.
func formatStatusDate(status string) string {
	match := statusDatePattern.FindString(status)
	if match == "" {
		return ""
	}
	parts := strings.Split(match, "/")
	if len(parts) != 3 {
		return match
	}
	month, merr := strconv.Atoi(parts[0])
	day, derr := strconv.Atoi(parts[1])
	if merr != nil || derr != nil {
		return match
	}
	year := parts[2]
	if len(year) == 2 {
		year = "20" + year
	}
	if month < 1 || month > 12 {
		return match
	}
	return fmt.Sprintf("%s %d, %s", monthNames[month-1], day, year)
}
