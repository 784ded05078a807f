package classify

import (
	"testing"

	"github.com/pfrederiksen/sports-events/internal/event"
)

func TestStrict(t *testing.T) {
	tests := []struct {
		title      string
		wantAccept bool
		wantTag    event.SportTag
		wantReason string
	}{
		{"IBJJF Rio Summer Open No-Gi Championship", true, event.SportJJB, ReasonAccepted},
		{"ADCC European Trials", true, event.SportGrappling, ReasonAccepted},
		{"WBC Muay Thai Grand Prix", false, "", ReasonRejectedKeyword},
		{"Grappling & MMA Night", false, "", ReasonRejectedKeyword},
		{"Open de Paris Jiu-Jitsu", true, event.SportJJB, ReasonAccepted},
		{"BJJ and Submission Only Open", true, event.SportGrappling, ReasonAccepted},
		{"Spring Classic", false, "", ReasonNoKeyword},
		{"", false, "", ReasonNoKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Strict(tt.title)
			if got.Accepted != tt.wantAccept {
				t.Errorf("Strict(%q).Accepted = %v, want %v", tt.title, got.Accepted, tt.wantAccept)
			}
			if got.SportTag != tt.wantTag {
				t.Errorf("Strict(%q).SportTag = %q, want %q", tt.title, got.SportTag, tt.wantTag)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Strict(%q).Reason = %q, want %q", tt.title, got.Reason, tt.wantReason)
			}
		})
	}
}

func TestCombat(t *testing.T) {
	tests := []struct {
		title string
		want  event.SportTag
	}{
		{"European Jiu-Jitsu Championship", event.SportJJB},
		{"ADCC Open Barcelona", event.SportGrappling},
		{"Submission Wrestling Cup", event.SportGrappling},
		{"Spring Classic", event.SportJJB},
	}

	for _, tt := range tests {
		if got := Combat(tt.title); got != tt.want {
			t.Errorf("Combat(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestRunning(t *testing.T) {
	tests := []struct {
		title string
		want  event.SportTag
	}{
		{"Ultra-Trail du Mont-Blanc", event.SportTrail},
		{"Trail Marathon des Cimes", event.SportTrail},
		{"Marathon de Paris", event.SportMarathon},
		{"Semi-Marathon de Lyon", event.SportRunning},
		{"Berlin Half Marathon", event.SportRunning},
		{"Corrida 10k de Noël", event.SportRunning},
		{"Color Run", event.SportRunning},
	}

	for _, tt := range tests {
		if got := Running(tt.title); got != tt.want {
			t.Errorf("Running(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestFederation(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"IBJJF Rio Summer Open No-Gi Championship", "IBJJF"},
		{"ADCC European Trials", "ADCC"},
		{"Abu Dhabi Grand Slam (UAEJJF)", "UAEJJF"},
		{"AJP Tour Paris / IBJJF rules", "IBJJF"},
		{"Nagano Open", ""},
		{"naga grappling challenge", "NAGA"},
		{"HYROX Paris", "HYROX"},
		{"Local Open", ""},
	}

	for _, tt := range tests {
		if got := Federation(tt.title); got != tt.want {
			t.Errorf("Federation(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestInEurope(t *testing.T) {
	tests := []struct {
		location string
		title    string
		want     bool
	}{
		{"Lisboa, Portugal", "Open", true},
		{"", "Paris Open", true},
		{"Las Vegas, NV", "Worlds", false},
		{"São Paulo, Brazil", "Brasileiro", false},
		{"Buenos Aires, Argentina", "Copa Podio Grappling Open", false},
		{"Porto Alegre, Brazil", "Gramado Open", false},
		{"Sydney, New South Wales", "Pan Pacific", false},
		{"San Bernardino, USA", "SoCal Open", false},
		{"Wenceslau Malta, Rio de Janeiro", "Brazilian Nationals", false},
		{"Gent, Belgium", "Flanders Open", true},
		{"Porto, Portugal", "Porto Open", true},
		{"Cardiff, Wales", "Welsh Open", true},
		{"", "Argentina Open", false},
		{"Online", "Bern Open", true},
	}

	for _, tt := range tests {
		if got := InEurope(tt.location, tt.title); got != tt.want {
			t.Errorf("InEurope(%q, %q) = %v, want %v", tt.location, tt.title, got, tt.want)
		}
	}
}
