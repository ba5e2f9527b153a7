package main

import "testing"

func TestRun_RejectsBadPort(t *testing.T) {
	for _, arg := range []string{"abc", "0", "70000", "-1"} {
		if code := run([]string{arg}); code != 2 {
			t.Errorf("run(%q) = %d, want 2", arg, code)
		}
	}
}
