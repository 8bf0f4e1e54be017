// Package resources holds the static reference data shown by the chat:
// hospitals, healing music and report recommendations.
package resources

import (
	"fmt"
	"strings"
)

// Hospital is a mental-health facility shown in referrals.
type Hospital struct {
	Name      string
	Address   string
	Phone     string
	Specialty string
}

// Track is a healing-music recommendation.
type Track struct {
	Title string
	URL   string
}

var hospitals = []Hospital{
	{
		Name:      "Fortis Hospital",
		Address:   "B-22, Sector 62, Gautam Budh Nagar, Greater Noida",
		Phone:     "0120-240-2100",
		Specialty: "Psychiatry & Mental Health",
	},
	{
		Name:      "Kailash Hospital",
		Address:   "Gamma-I, Greater Noida, Uttar Pradesh 201310",
		Phone:     "0120-232-6021",
		Specialty: "Mental Health Services",
	},
}

var tracks = []Track{
	{Title: "Weightless", URL: "https://youtu.be/UfcAVejslrU"},
	{Title: "Clair de Lune", URL: "https://youtu.be/CvFH_6DNRCY"},
}

var recommendations = []string{
	"1. Practice mindfulness daily",
	"2. Maintain regular sleep schedule",
	"3. Engage in physical activity",
	"4. Consider professional counseling",
}

// Hospitals returns the hospital list.
func Hospitals() []Hospital {
	return append([]Hospital(nil), hospitals...)
}

// Tracks returns the music list. The first entry is the one opened in the browser.
func Tracks() []Track {
	return append([]Track(nil), tracks...)
}

// Recommendations returns the numbered recommendations printed in reports.
func Recommendations() []string {
	return append([]string(nil), recommendations...)
}

// HospitalListing formats the hospital referral message.
func HospitalListing() string {
	entries := make([]string, 0, len(hospitals))
	for _, h := range hospitals {
		entries = append(entries, fmt.Sprintf("🏥 %s\n📍 %s\n📞 %s\nSpecialty: %s",
			h.Name, h.Address, h.Phone, h.Specialty))
	}
	return "Mental Health Hospitals in Greater Noida:\n\n" + strings.Join(entries, "\n\n")
}

// MusicListing formats the music recommendation message.
func MusicListing() string {
	lines := make([]string, 0, len(tracks))
	for _, t := range tracks {
		lines = append(lines, "🎵 "+t.Title)
	}
	return "Recommended Music:\n" + strings.Join(lines, "\n")
}
