package store

import (
	"testing"
	"time"

	"github.com/causewayapp/causeway/energy"
	"github.com/causewayapp/causeway/models"
)

var noon = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

func TestRefreshEnergyMidnightReset(t *testing.T) {
	p := &models.Profile{Energy: 0, LastEnergyReset: noon.Add(-24 * time.Hour)}

	refreshEnergy(p, noon)

	if p.Energy != energy.MaxEnergy {
		t.Fatalf("expected full reset to %d, got %d", energy.MaxEnergy, p.Energy)
	}
	if !p.LastEnergyReset.Equal(noon) {
		t.Fatalf("midnight reset must re-anchor to now, got %v", p.LastEnergyReset)
	}
}

func TestRefreshEnergyAdvancesAnchorByCreditedHours(t *testing.T) {
	lastReset := noon.Add(-150 * time.Minute) // 2 full hours + 30 min
	p := &models.Profile{Energy: 3, LastEnergyReset: lastReset}

	refreshEnergy(p, noon)

	if p.Energy != 5 {
		t.Fatalf("expected 2 hours credited, got energy %d", p.Energy)
	}
	want := lastReset.Add(2 * time.Hour)
	if !p.LastEnergyReset.Equal(want) {
		t.Fatalf("anchor must advance by credited hours only: got %v, want %v", p.LastEnergyReset, want)
	}

	// The remaining 30 minutes must not be credited again.
	refreshEnergy(p, noon)
	if p.Energy != 5 {
		t.Fatalf("second refresh within the hour credited energy again: %d", p.Energy)
	}
}

func TestRefreshEnergyNoChangeAtMax(t *testing.T) {
	lastReset := noon.Add(-3 * time.Hour)
	p := &models.Profile{Energy: energy.MaxEnergy, LastEnergyReset: lastReset}

	refreshEnergy(p, noon)

	if p.Energy != energy.MaxEnergy {
		t.Fatalf("expected energy unchanged at max, got %d", p.Energy)
	}
	if !p.LastEnergyReset.Equal(lastReset) {
		t.Fatal("anchor must not move while at max")
	}
}

func TestRefreshEnergyCapsAtMax(t *testing.T) {
	p := &models.Profile{Energy: 8, LastEnergyReset: noon.Add(-6 * time.Hour)}

	refreshEnergy(p, noon)

	if p.Energy != energy.MaxEnergy {
		t.Fatalf("expected cap at %d, got %d", energy.MaxEnergy, p.Energy)
	}
}
