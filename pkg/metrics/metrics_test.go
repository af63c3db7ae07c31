package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

// swapGlobal installs a manager on a private registry for the duration of a test.
func swapGlobal(opts ...Option) (*Manager, func()) {
	prev := globalManager
	m := NewManager(append([]Option{WithPrometheusRegistry(prometheus.NewRegistry())}, opts...)...)
	globalManager = m
	return m, func() { globalManager = prev }
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it uses the podium namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "podium")
				So(manager.subsystem, ShouldEqual, "dashboard")
				So(manager.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("x_"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then every option is applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.metricPrefix, ShouldEqual, "x_")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.enabled, ShouldBeFalse)
			})

			Convey("And series are registered under the prefixed name", func() {
				manager.datasetRecords.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_x_dataset_records" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty option values are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "podium")
				So(manager.subsystem, ShouldEqual, "dashboard")
				So(manager.histogramBuckets, ShouldResemble, defaultLatencyBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a fresh global manager", t, func() {
		m, restore := swapGlobal()
		Reset(restore)

		Convey("When filter evaluations are recorded", func() {
			RecordFilter(1.5, 120)
			RecordFilter(0.5, 0)

			Convey("Then evaluations and empty results are counted", func() {
				So(testutil.ToFloat64(m.filterEvaluations), ShouldEqual, 2)
				So(testutil.ToFloat64(m.emptyResults), ShouldEqual, 1)
			})
		})

		Convey("When views are recorded", func() {
			RecordView("medal_map", 2)
			RecordView("medal_map", 3)
			RecordView("age_histogram", 1)

			Convey("Then each view has its own series", func() {
				So(testutil.ToFloat64(m.viewComputations.WithLabelValues("medal_map")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.viewComputations.WithLabelValues("age_histogram")), ShouldEqual, 1)
			})
		})

		Convey("When CSV exports are recorded", func() {
			RecordCSVExport(10)
			RecordCSVExport(0)

			Convey("Then exports and rows are summed", func() {
				So(testutil.ToFloat64(m.csvExports), ShouldEqual, 2)
				So(testutil.ToFloat64(m.csvExportedRows), ShouldEqual, 10)
			})
		})

		Convey("When dataset gauges are updated", func() {
			UpdateDatasetRecords(271116)
			UpdateSnapshotVersion(4)
			RecordReload(true, 120)
			RecordReload(false, 3)

			Convey("Then the gauges hold the last value", func() {
				So(testutil.ToFloat64(m.datasetRecords), ShouldEqual, 271116)
				So(testutil.ToFloat64(m.snapshotVersion), ShouldEqual, 4)
				So(testutil.ToFloat64(m.reloads.WithLabelValues("success")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.reloads.WithLabelValues("failure")), ShouldEqual, 1)
			})
		})

		Convey("When HTTP and error metrics are recorded", func() {
			RecordHTTPRequest("/records", "GET", "200")
			RecordHTTPRequestDuration("/records", "GET", "200", 5.0)
			RecordErrorByEndpoint("/records", "GET", "bad_request")
			RecordErrorByType("bad_request", "warning")

			Convey("Then the counters move", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/records", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("/records", "GET", "bad_request")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByType.WithLabelValues("bad_request", "warning")), ShouldEqual, 1)
			})
		})

		Convey("When system metrics are recorded", func() {
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(12)

			Convey("Then the gauges are set", func() {
				So(testutil.ToFloat64(m.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 12)
				So(func() { RecordSystemGCPauseTime(0.3) }, ShouldNotPanic)
			})
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			RecordFilter(1, 0)
			UpdateDatasetRecords(9)

			Convey("Then nothing is recorded", func() {
				So(testutil.ToFloat64(m.filterEvaluations), ShouldEqual, 0)
				So(testutil.ToFloat64(m.datasetRecords), ShouldEqual, 0)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		registry := GetRegistry()

		Convey("Then it is the custom registry the global manager writes to", func() {
			So(registry, ShouldNotBeNil)
			So(registry, ShouldEqual, customRegistry)

			UpdateSnapshotVersion(1)
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
