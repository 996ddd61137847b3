package attendance

import "testing"

func TestCalculateAttendancePercentage(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    string
	}{
		{"zero total avoids division by zero", 0, 0, "0%"},
		{"three of four", 3, 4, "75.00%"},
		{"half", 1, 2, "50.00%"},
		{"full attendance", 5, 5, "100.00%"},
		{"never present", 0, 3, "0.00%"},
		{"repeating decimal is truncated to two places", 1, 3, "33.33%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateAttendancePercentage(tt.present, tt.total); got != tt.want {
				t.Errorf("CalculateAttendancePercentage(%d, %d) = %q, want %q",
					tt.present, tt.total, got, tt.want)
			}
		})
	}
}
