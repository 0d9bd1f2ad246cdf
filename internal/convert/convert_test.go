package convert

import "testing"

func TestIdentity(t *testing.T) {
	got, err := Identity{}.Convert("软件")
	if err != nil || got != "软件" {
		t.Fatalf("Identity.Convert = %q, %v", got, err)
	}
}

func TestNewNoneIsIdentity(t *testing.T) {
	c, err := New(" None ")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := c.(Identity); !ok {
		t.Fatalf("expected Identity, got %T", c)
	}
}

func TestOpenCCTaiwanPhrasing(t *testing.T) {
	c, err := NewOpenCC("")
	if err != nil {
		t.Fatalf("NewOpenCC returned error: %v", err)
	}
	if c.Profile() != DefaultProfile {
		t.Fatalf("profile = %q", c.Profile())
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"我们", "我們"},
		{"这个软件", "這個軟體"},
		{"已經是繁體", "已經是繁體"},
	}
	for _, tt := range tests {
		got, err := c.Convert(tt.in)
		if err != nil {
			t.Fatalf("Convert(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Convert(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewOpenCCUnknownProfile(t *testing.T) {
	if _, err := NewOpenCC("klingon"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}
