package switchset

import "testing"

func TestParseOverride(t *testing.T) {
	cases := []struct {
		arg   string
		name  string
		value bool
		bad   bool
	}{
		{"READLINE=1", "READLINE", true, false},
		{"READLINE=true", "READLINE", true, false},
		{"READLINE=0", "READLINE", false, false},
		{"READLINE=false", "READLINE", false, false},
		{"READLINE", "", false, true},
		{"READLINE=", "", false, true},
		{"=1", "", false, true},
		{"READLINE=yes", "", false, true},
	}
	for _, c := range cases {
		name, value, err := ParseOverride(c.arg)
		if c.bad {
			if err == nil {
				t.Errorf("ParseOverride(%q) accepted", c.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOverride(%q) failed: %v", c.arg, err)
			continue
		}
		if name != c.name || value != c.value {
			t.Errorf("ParseOverride(%q) = %q, %v", c.arg, name, value)
		}
	}
}

func TestParseOverridesMergesOverBase(t *testing.T) {
	base := map[string]bool{"READLINE": false, "AUDIO": true}
	got, err := ParseOverrides([]string{"READLINE=1"}, base)
	if err != nil {
		t.Fatalf("ParseOverrides failed: %v", err)
	}
	if !got["READLINE"] {
		t.Error("flag did not win over base value")
	}
	if !got["AUDIO"] {
		t.Error("untouched base value lost")
	}
}

func TestParseOverridesNilBase(t *testing.T) {
	got, err := ParseOverrides([]string{"A=0", "A=1"}, nil)
	if err != nil {
		t.Fatalf("ParseOverrides failed: %v", err)
	}
	if !got["A"] {
		t.Error("later argument did not win")
	}
}
