package profile

import (
	"testing"

	"github.com/courtmix/courtmix/internal/schedule"
)

func TestGetBalanced(t *testing.T) {
	w, err := Get("balanced")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != schedule.DefaultWeights() {
		t.Errorf("balanced weights = %+v, want defaults", w)
	}
}

func TestGetEmptyNameDefaultsToBalanced(t *testing.T) {
	w, err := Get("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != schedule.DefaultWeights() {
		t.Errorf("empty-name weights = %+v, want defaults", w)
	}
}

func TestGetVariants(t *testing.T) {
	base := schedule.DefaultWeights()

	competitive, err := Get("competitive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if competitive.SkillBalance <= base.SkillBalance {
		t.Error("competitive profile does not emphasize skill balance")
	}

	social, err := Get("social")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if social.PartnerRepeat <= base.PartnerRepeat || social.OpponentRepeat <= base.OpponentRepeat {
		t.Error("social profile does not emphasize variety")
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("aggressive"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestNamesResolve(t *testing.T) {
	for _, name := range Names() {
		if _, err := Get(name); err != nil {
			t.Errorf("Get(%q) error: %v", name, err)
		}
	}
}
