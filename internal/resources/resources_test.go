package resources

import (
	"strings"
	"testing"
)

func TestHospitalListing(t *testing.T) {
	got := HospitalListing()
	if !strings.HasPrefix(got, "Mental Health Hospitals in Greater Noida:") {
		t.Errorf("unexpected header: %q", got)
	}
	for _, h := range Hospitals() {
		for _, field := range []string{h.Name, h.Address, h.Phone, h.Specialty} {
			if !strings.Contains(got, field) {
				t.Errorf("listing missing %q", field)
			}
		}
	}
}

func TestMusicListing(t *testing.T) {
	got := MusicListing()
	want := "Recommended Music:\n🎵 Weightless\n🎵 Clair de Lune"
	if got != want {
		t.Errorf("MusicListing() = %q, want %q", got, want)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	tr := Tracks()
	tr[0].URL = "changed"
	if Tracks()[0].URL == "changed" {
		t.Error("Tracks returned shared backing array")
	}

	recs := Recommendations()
	if len(recs) != 4 {
		t.Errorf("recommendations = %d, want 4", len(recs))
	}
}
