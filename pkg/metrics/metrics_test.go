package metrics_test

import (
	"testing"

	"github.com/okian/stride/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("ledger"),
		)

		Convey("Then construction registers all metrics exactly once", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})

		Convey("Then a second manager on the same registry panics on re-registration", func() {
			So(func() {
				metrics.NewManager(
					metrics.WithPrometheusRegistry(reg),
					metrics.WithNamespace("test"),
					metrics.WithSubsystem("ledger"),
				)
			}, ShouldPanic)
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the package-level recorders", t, func() {
		Convey("When they are invoked", func() {
			So(func() {
				metrics.RecordMarkerAccepted()
				metrics.RecordMarkerRejected("out_of_bounds")
				metrics.AddDistance(555)
				metrics.RecordPlayerRegistered()
				metrics.RecordLeaderboardUpdate()
				metrics.RecordRewardMinted(2)
				metrics.RecordRewardRefused()
				metrics.UpdateTotalMarkers(10)
				metrics.UpdateTotalPlayers(3)
				metrics.UpdateGridCells(7)
				metrics.RecordHTTPRequest("markers", "POST", "201")
				metrics.RecordHTTPRequestDuration("markers", "POST", "201", 1.2)
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
		})

		Convey("When the registry is gathered", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["stride_ledger_markers_accepted_total"], ShouldBeTrue)
			So(names["stride_ledger_markers_rejected_total"], ShouldBeTrue)
			So(names["stride_ledger_distance_meters_total"], ShouldBeTrue)
			So(names["stride_ledger_reward_minted_total"], ShouldBeTrue)
		})
	})
}
