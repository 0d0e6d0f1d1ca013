package sample

import "testing"

func TestZonesLoadsWitnessSet(t *testing.T) {
	zones := Zones()

	want := []string{
		"America/Los_Angeles",
		"America/Bahia_Banderas",
		"Europe/Madrid",
		"Atlantic/Azores",
		"Asia/Hong_Kong",
		"Asia/Ust-Nera",
		"Pacific/Rarotonga",
		"US/Pacific",
	}
	for _, name := range want {
		zi, ok := zones[name]
		if !ok {
			t.Fatalf("zone %q not loaded", name)
		}
		if zi.Context != Context {
			t.Errorf("zone %q has context %v, want the shared sample Context", name, zi.Context)
		}
	}
}

func TestUSPacificIsALinkToLosAngeles(t *testing.T) {
	zones := Zones()
	link := zones["US/Pacific"]
	if !link.IsLink() {
		t.Fatalf("US/Pacific should be a link")
	}
	if link.Target.Name != "America/Los_Angeles" {
		t.Errorf("US/Pacific targets %q, want America/Los_Angeles", link.Target.Name)
	}
}

func TestBahiaBanderasHasTwoEras(t *testing.T) {
	zones := Zones()
	zi := zones["America/Bahia_Banderas"]
	if len(zi.Eras) != 2 {
		t.Fatalf("got %d eras, want 2", len(zi.Eras))
	}
	if zi.Eras[0].Policy == nil || zi.Eras[0].Policy.Name != "Mexico" {
		t.Errorf("first era should use the Mexico policy")
	}
	if zi.Eras[1].Policy != nil {
		t.Errorf("second era should have no policy, got %v", zi.Eras[1].Policy)
	}
}

func TestHongKongHasNoDST(t *testing.T) {
	zones := Zones()
	zi := zones["Asia/Hong_Kong"]
	if len(zi.Eras) != 1 || zi.Eras[0].Policy != nil {
		t.Errorf("Hong Kong should be a single fixed-offset era")
	}
	if zi.Eras[0].OffsetSeconds != 8*3600 {
		t.Errorf("offset = %d, want 28800", zi.Eras[0].OffsetSeconds)
	}
}
