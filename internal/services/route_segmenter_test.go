package services

import (
	"testing"

	"fuel-route-service/internal/domain"
)

func linePoints(n int, startLat, endLat, lon float64) []domain.Coordinates {
	pts := make([]domain.Coordinates, n)
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		pts[i] = domain.Coordinates{Lat: startLat + frac*(endLat-startLat), Lon: lon}
	}
	return pts
}

func TestSegmentRouteEvenSpacing(t *testing.T) {
	// 500-mile route on a 500-mile tank: effective range 400, so two stops
	// at even fractions of the total distance.
	points := linePoints(10, 30, 37, -100)

	targets, err := SegmentRoute(points, 500, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	if targets[0].TargetDistance != 250 {
		t.Errorf("first target = %v, want 250", targets[0].TargetDistance)
	}
	if targets[1].TargetDistance != 500 {
		t.Errorf("second target = %v, want 500", targets[1].TargetDistance)
	}

	// Proportional index mapping: floor(250/500 * 10) = 5, and the final
	// target clamps to the last point.
	if targets[0].Point != points[5] {
		t.Errorf("first target point = %+v, want points[5]", targets[0].Point)
	}
	if targets[1].Point != points[9] {
		t.Errorf("second target point = %+v, want points[9] (clamped)", targets[1].Point)
	}
}

func TestSegmentRouteShortRouteGetsOneStop(t *testing.T) {
	points := linePoints(5, 30, 31, -100)

	targets, err := SegmentRoute(points, 100, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(targets) != 1 {
		t.Fatalf("expected 1 target for a short route, got %d", len(targets))
	}
	if targets[0].TargetDistance != 100 {
		t.Errorf("target distance = %v, want 100", targets[0].TargetDistance)
	}
}

func TestSegmentRouteIncreasingTargets(t *testing.T) {
	points := linePoints(50, 25, 45, -95)

	targets, err := SegmentRoute(points, 2200, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ceil(2200/400) = 6 stops.
	if len(targets) != 6 {
		t.Fatalf("expected 6 targets, got %d", len(targets))
	}
	for i := 1; i < len(targets); i++ {
		if targets[i].TargetDistance <= targets[i-1].TargetDistance {
			t.Fatalf("target %d (%v) not after target %d (%v)",
				i, targets[i].TargetDistance, i-1, targets[i-1].TargetDistance)
		}
	}
}

func TestSegmentRouteInvalidInput(t *testing.T) {
	points := linePoints(5, 30, 31, -100)

	if _, err := SegmentRoute(points[:1], 100, 500); err == nil {
		t.Error("expected error for single-point polyline")
	}
	if _, err := SegmentRoute(points, 0, 500); err == nil {
		t.Error("expected error for zero distance")
	}
	if _, err := SegmentRoute(points, 100, 0); err == nil {
		t.Error("expected error for zero tank range")
	}
}
