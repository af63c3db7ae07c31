package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

const fixture = `ID,Name,Sex,Age,Height,Weight,Team,NOC,Games,Year,Season,City,Sport,Event,Medal
1,Ann,F,22,170,60,United States,USA,2000 Summer,2000,Summer,Sydney,Swimming,Swimming Women's 100m,Gold
2,Ben,M,25,180,75,United States,USA,2004 Summer,2004,Summer,Athina,Swimming,Swimming Men's 100m,NA
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "athlete_events.csv")
	if err := os.WriteFile(path, []byte(fixture), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PODIUM_ADDR", ":8080")
			_ = os.Setenv("PODIUM_HISTOGRAM_BUCKETS", "10")
			_ = os.Setenv("PODIUM_DONUT_TOP_N", "5")
			defer func() {
				_ = os.Unsetenv("PODIUM_ADDR")
				_ = os.Unsetenv("PODIUM_HISTOGRAM_BUCKETS")
				_ = os.Unsetenv("PODIUM_DONUT_TOP_N")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.HistogramBuckets, convey.ShouldEqual, 10)
				convey.So(cfg.DonutTopN, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When testing service creation", func() {
			cfg := config.New()
			svc := newService(cfg, logger.Nop())

			convey.Convey("Then the configured settings should be applied", func() {
				convey.So(svc, convey.ShouldNotBeNil)
				convey.So(svc.TableRows(), convey.ShouldResemble, []int{20, 50})
				stats := svc.GetStats()
				convey.So(stats["dataPath"], convey.ShouldEqual, cfg.DataPath)
				convey.So(stats["loaded"], convey.ShouldBeFalse)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainHandler(t *testing.T) {
	convey.Convey("Given a wired handler", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.DataPath = writeFixture(t)
		svc := newService(cfg, logger.Nop())
		h := newHandler(ctx, svc, logger.Nop())

		convey.Convey("When no dataset is loaded", func() {
			req := httptest.NewRequest(http.MethodGet, "/domains", http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.Convey("Then data routes should be unavailable", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusServiceUnavailable)
				convey.So(w.Header().Get(api.RequestIDHeader), convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When the dataset is loaded", func() {
			_, err := svc.Reload(ctx)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then business and docs routes should answer", func() {
				for _, path := range []string{"/domains", "/summary", "/records", "/views/medal_map", "/stats", "/api-docs", "/openapi.yaml"} {
					req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
					w := httptest.NewRecorder()
					h.ServeHTTP(w, req)
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("And the service metrics update should not panic", func() {
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := newService(config.New(), logger.Nop())

			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating from an unloaded service", func() {
			svc := newService(config.New(), logger.Nop())

			convey.Convey("Then it should skip the missing figures", func() {
				convey.So(func() {
					updateServiceMetrics(svc)
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When the address is empty", func() {
			_ = os.Setenv("PODIUM_ADDR", "")
			defer func() { _ = os.Unsetenv("PODIUM_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the dataset file is missing", func() {
			cfg := config.New()
			cfg.DataPath = filepath.Join(t.TempDir(), "missing.csv")
			svc := newService(cfg, logger.Nop())

			convey.Convey("Then the reload should fail and leave the service empty", func() {
				_, err := svc.Reload(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(svc.GetStats()["loaded"], convey.ShouldBeFalse)
			})
		})
	})
}
