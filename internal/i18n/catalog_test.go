package i18n

import (
	"testing"

	"FarmBot/entity"
)

func TestT_FallsBackToArabic(t *testing.T) {
	if got := T(KeyCancelled, "fr"); got != catalog[KeyCancelled]["ar"] {
		t.Errorf("T with unknown lang = %q, want the Arabic text", got)
	}
	if got := T(Key("no_such_key"), entity.LangEnglish); got != "no_such_key" {
		t.Errorf("T with unknown key = %q, want the key itself", got)
	}
}

func TestCatalog_FullEnglishParity(t *testing.T) {
	for key, texts := range catalog {
		if texts["ar"] == "" {
			t.Errorf("key %s has no Arabic text", key)
		}
		if texts["en"] == "" {
			t.Errorf("key %s has no English text", key)
		}
	}
}

func TestMainMenuRows_SameShapeInBothLanguages(t *testing.T) {
	ar := MainMenuRows(entity.LangArabic)
	en := MainMenuRows(entity.LangEnglish)
	if len(ar) != len(en) {
		t.Fatalf("menu rows differ: ar=%d en=%d", len(ar), len(en))
	}
	for i := range ar {
		if len(ar[i]) != len(en[i]) {
			t.Errorf("row %d differs: ar=%d en=%d buttons", i, len(ar[i]), len(en[i]))
		}
	}
}
