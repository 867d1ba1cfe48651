package normalize

import "testing"

func TestEmail(t *testing.T) {
	in := "  John.DOE@Example.COM  "
	want := "john.doe@example.com"
	got := Email(in)
	if got != want {
		t.Fatalf("Email(%q) = %q, want %q", in, got, want)
	}
}

func TestPrefixKeepsCase(t *testing.T) {
	if got := Prefix("  Ali "); got != "Ali" {
		t.Fatalf("Prefix = %q, want %q", got, "Ali")
	}
}

func TestHasFoldPrefix(t *testing.T) {
	cases := []struct {
		s, prefix string
		want      bool
	}{
		{"Alice Smith", "ali", true},
		{"Alice Smith", " ALICE ", true},
		{"Alice", "", true},
		{"Bob", "alice", false},
		{"Al", "Alice", false},
	}
	for _, c := range cases {
		if got := HasFoldPrefix(c.s, c.prefix); got != c.want {
			t.Fatalf("HasFoldPrefix(%q, %q) = %v, want %v", c.s, c.prefix, got, c.want)
		}
	}
}
