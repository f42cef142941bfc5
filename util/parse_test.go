package util

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"100MB", 100 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"2GB", 2 * 1024 * 1024 * 1024},
		{"1024", 1024},
		{"  10MB  ", 10 * 1024 * 1024},
		{"10mb", 10 * 1024 * 1024},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseSize(tc.input, 0); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSize_Default(t *testing.T) {
	defaultVal := int64(5 * 1024 * 1024)
	for _, in := range []string{"", "invalid", "-3MB"} {
		if got := ParseSize(in, defaultVal); got != defaultVal {
			t.Errorf("ParseSize(%q) = %d, want default %d", in, got, defaultVal)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{100 * 1024 * 1024, "100MB"},
		{2 * 1024 * 1024 * 1024, "2GB"},
		{1536, "1536"},
		{2048, "2KB"},
		{0, "0"},
	}
	for _, tc := range tests {
		if got := FormatSize(tc.input); got != tc.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if got := ParseSize(FormatSize(100*1024*1024), 0); got != 100*1024*1024 {
		t.Errorf("round trip lost value: %d", got)
	}
}
