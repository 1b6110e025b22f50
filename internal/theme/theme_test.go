package theme

import "testing"

func TestGetFallsBackToDefault(t *testing.T) {
	def := Get(Default)
	unknown := Get("no-such-theme")
	if unknown.Name != def.Name {
		t.Errorf("unknown theme = %q, want default %q", unknown.Name, def.Name)
	}
}

func TestGetByName(t *testing.T) {
	if got := GetByName(""); got.Name != Get(Default).Name {
		t.Errorf("empty name should resolve to default, got %q", got.Name)
	}
	if got := GetByName("nord"); got.Name != "Nord" {
		t.Errorf("GetByName(nord) = %q, want Nord", got.Name)
	}
}

func TestNickColorStable(t *testing.T) {
	th := Get(Default)
	first := th.NickColor("alice")
	for i := 0; i < 10; i++ {
		if got := th.NickColor("alice"); got != first {
			t.Fatalf("NickColor not stable: %q then %q", first, got)
		}
	}
}

func TestNickColorEmptyPool(t *testing.T) {
	th := Theme{Text: "#FFFFFF"}
	if got := th.NickColor("alice"); got != "#FFFFFF" {
		t.Errorf("empty pool should fall back to Text, got %q", got)
	}
}

func TestAllThemesComplete(t *testing.T) {
	for _, name := range Names() {
		th := Get(name)
		t.Run(string(name), func(t *testing.T) {
			if th.Primary == "" || th.Text == "" || th.Bg == "" || th.Border == "" {
				t.Errorf("theme %q missing core colors: %+v", name, th)
			}
			if len(th.NickColors) == 0 {
				t.Errorf("theme %q has no nick colors", name)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	th := Theme{Primary: "#123456"}
	if th.GetBgSelected() != "#123456" {
		t.Errorf("GetBgSelected should default to Primary")
	}
	if th.GetBorderFocus() != "#123456" {
		t.Errorf("GetBorderFocus should default to Primary")
	}
}
