package month

import (
	"testing"
	"time"
)

func TestFirstOfMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "meio do mês",
			in:   time.Date(2025, 8, 17, 15, 30, 0, 0, time.UTC),
			want: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "já é dia 1",
			in:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "último dia do ano",
			in:   time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			want: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstOfMonth(tt.in); !got.Equal(tt.want) {
				t.Errorf("FirstOfMonth(%v) = %v, esperava %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2025-08-01"); err != nil {
		t.Errorf("parseDate formato curto falhou: %v", err)
	}
	if _, err := parseDate("2025-08-01T00:00:00Z"); err != nil {
		t.Errorf("parseDate RFC3339 falhou: %v", err)
	}
	if _, err := parseDate("01/08/2025"); err == nil {
		t.Error("parseDate deveria rejeitar formato brasileiro sem ISO")
	}
}
