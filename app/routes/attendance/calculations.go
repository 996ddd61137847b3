package attendance

import "fmt"

// CalculateAttendancePercentage formats present/total as a percentage string
// with two decimals, e.g. "75.00%". A zero total yields the literal "0%";
// report consumers depend on both shapes exactly.
func CalculateAttendancePercentage(presentDays, totalDays int) string {
	if totalDays == 0 {
		return "0%"
	}
	percentage := (float64(presentDays) / float64(totalDays)) * 100
	return fmt.Sprintf("%.2f%%", percentage)
}
