package data

import "testing"

func TestUserInitials(t *testing.T) {
	cases := []struct{ name, want string }{
		{"ada lovelace", "AL"},
		{"Grace Brewster Hopper", "GB"},
		{"  linus  ", "L"},
		{"", ""},
		{"élodie durand", "ÉD"},
	}
	for _, c := range cases {
		if got := (User{DisplayName: c.name}).Initials(); got != c.want {
			t.Fatalf("Initials(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestChatPartner(t *testing.T) {
	chat := Chat{
		Participants:       []string{"me", "you"},
		ParticipantDetails: []User{{ID: "me"}, {ID: "you", DisplayName: "You"}},
	}
	if id := chat.PartnerID("me"); id != "you" {
		t.Fatalf("PartnerID = %q", id)
	}
	partner, ok := chat.Partner("me")
	if !ok || partner.DisplayName != "You" {
		t.Fatalf("Partner = %+v, %v", partner, ok)
	}

	chat.ParticipantDetails = []User{{ID: "me"}}
	if _, ok := chat.Partner("me"); ok {
		t.Fatal("expected no partner when its lookup was dropped")
	}
	if !chat.HasParticipant("you") || chat.HasParticipant("them") {
		t.Fatal("HasParticipant mismatch")
	}
}
