package format

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	cases := map[string]string{
		"ali_reza":   `ali\_reza`,
		"*bold*":     `\*bold\*`,
		"[link](x)":  `\[link](x)`,
		"بدون علامت": "بدون علامت",
	}
	for in, want := range cases {
		if got := EscapeMarkdown(in); got != want {
			t.Fatalf("EscapeMarkdown(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDeref(t *testing.T) {
	title := "t"
	size := int64(7)
	if DerefString(&title, "x") != "t" || DerefString(nil, "x") != "x" {
		t.Fatal("DerefString mismatch")
	}
	if DerefInt64(&size, 0) != 7 || DerefInt64(nil, 3) != 3 {
		t.Fatal("DerefInt64 mismatch")
	}
}
