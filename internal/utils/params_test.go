package utils

import "testing"

func TestParseID(t *testing.T) {
	cases := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseID(tc.in)

		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseID(%q): expected an error", tc.in)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParseID(%q): unexpected error %v", tc.in, err)
			continue
		}

		if got != tc.want {
			t.Errorf("ParseID(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
