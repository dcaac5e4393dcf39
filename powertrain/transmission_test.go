package powertrain

import (
	"math"
	"testing"
)

func TestTransmission_ShiftResetsTimer(t *testing.T) {
	gearbox := Manual6Speed()

	gearbox.ShiftUp()

	if gearbox.TimeSinceShift != 0 {
		t.Errorf("TimeSinceShift = %v after ShiftUp, want 0", gearbox.TimeSinceShift)
	}
	if got, want := gearbox.CurrentGear, 2; got != want {
		t.Errorf("CurrentGear = %v, want %v", got, want)
	}
	if got, want := gearbox.CurrentGearRatio(), 2.2; got != want {
		t.Errorf("CurrentGearRatio after 1→2 = %v, want %v", got, want)
	}
}

func TestTransmission_GearWalk(t *testing.T) {
	gearbox := Manual6Speed()

	// down through neutral into reverse
	gearbox.ShiftDown()
	if gearbox.CurrentGear != GearNeutral {
		t.Fatalf("CurrentGear = %v, want neutral", gearbox.CurrentGear)
	}
	if gearbox.CurrentGearRatio() != 0 {
		t.Errorf("neutral ratio = %v, want 0", gearbox.CurrentGearRatio())
	}

	gearbox.ShiftDown()
	if gearbox.CurrentGear != GearReverse {
		t.Fatalf("CurrentGear = %v, want reverse", gearbox.CurrentGear)
	}
	if got := gearbox.CurrentGearRatio(); got != -3.5 {
		t.Errorf("reverse ratio = %v, want -3.5", got)
	}

	// reverse is the floor
	gearbox.ShiftDown()
	if gearbox.CurrentGear != GearReverse {
		t.Errorf("shifted below reverse: gear %v", gearbox.CurrentGear)
	}

	// and top gear is the ceiling
	for i := 0; i < 10; i++ {
		gearbox.ShiftUp()
	}
	if got, want := gearbox.CurrentGear, 6; got != want {
		t.Errorf("CurrentGear = %v, want top gear %v", got, want)
	}
	if got, want := gearbox.CurrentGearRatio(), 0.65; got != want {
		t.Errorf("top gear ratio = %v, want %v", got, want)
	}
}

func TestTransmission_ShiftEfficiencyDerating(t *testing.T) {
	gearbox := Manual6Speed()
	gearbox.ShiftUp()

	// mid-shift: efficiency halved
	_, efficiency, _ := gearbox.Update(0.1, 3000)
	if want := gearbox.Efficiency / 2; math.Abs(efficiency-want) > 1e-9 {
		t.Errorf("mid-shift efficiency = %v, want %v", efficiency, want)
	}

	// once TimeSinceShift passes ShiftTime the derating ends
	_, efficiency, _ = gearbox.Update(0.3, 3000)
	if math.Abs(efficiency-gearbox.Efficiency) > 1e-9 {
		t.Errorf("post-shift efficiency = %v, want %v", efficiency, gearbox.Efficiency)
	}
}

func TestTransmission_AutomaticUpshift(t *testing.T) {
	gearbox := Automatic5Speed()

	_, _, gear := gearbox.Update(0.016, 6000)
	if gear != 2 {
		t.Errorf("gear = %v after high-RPM update, want 2", gear)
	}
	if gearbox.TimeSinceShift != 0 {
		t.Errorf("TimeSinceShift = %v after automatic shift, want 0", gearbox.TimeSinceShift)
	}

	// at the top gear no further upshift happens
	gearbox.CurrentGear = len(gearbox.GearRatios)
	_, _, gear = gearbox.Update(0.016, 6000)
	if gear != len(gearbox.GearRatios) {
		t.Errorf("gear = %v, want to stay in top gear %v", gear, len(gearbox.GearRatios))
	}
}

func TestTransmission_AutomaticDownshift(t *testing.T) {
	gearbox := Automatic5Speed()
	gearbox.CurrentGear = 3

	_, _, gear := gearbox.Update(0.016, 1500)
	if gear != 2 {
		t.Errorf("gear = %v after low-RPM update, want 2", gear)
	}

	// never downshifts below first
	gearbox.CurrentGear = 1
	_, _, gear = gearbox.Update(0.016, 1000)
	if gear != 1 {
		t.Errorf("gear = %v, want to stay in first", gear)
	}
}

func TestTransmission_ManualIgnoresThresholds(t *testing.T) {
	gearbox := Manual6Speed()

	_, _, gear := gearbox.Update(0.016, 6200)
	if gear != 1 {
		t.Errorf("manual gearbox shifted on its own: gear %v", gear)
	}
}
