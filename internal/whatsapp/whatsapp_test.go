package whatsapp

import "testing"

func TestFormatPhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "919876543210"},
		{"919876543210", "919876543210"},
		{"09876543210", "919876543210"},
		{"+91 98765 43210", "919876543210"},
		{"98765-43210", "919876543210"},
	}
	for _, c := range cases {
		if got := FormatPhoneNumber(c.in); got != c.want {
			t.Errorf("FormatPhoneNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClickToChatLink(t *testing.T) {
	got := ClickToChatLink("9876543210", "Payment of Rs 500 due")
	want := "https://wa.me/919876543210?text=Payment+of+Rs+500+due"
	if got != want {
		t.Errorf("ClickToChatLink = %q, want %q", got, want)
	}
}

func TestNewProviderFallsBackToLinkOnly(t *testing.T) {
	if got := NewProvider("aisensy", "").GetName(); got != "link-only" {
		t.Errorf("provider without api key = %q, want link-only", got)
	}
	if got := NewProvider("aisensy", "key").GetName(); got != "AiSensy" {
		t.Errorf("aisensy provider = %q, want AiSensy", got)
	}
}
