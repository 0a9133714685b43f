// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exports the client's runtime counters in Prometheus
// format. The services keep their own counters; the Collector reads a
// fresh snapshot on every scrape instead of mirroring increments.
package metrics

import (
	"context"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "digilib"

// collectTimeout bounds the SQLite round-trips of one scrape.
const collectTimeout = 5 * time.Second

// Collector implements prometheus.Collector over the service snapshots.
type Collector struct {
	services *service.Services
	logger   *logger.Logger

	cacheEntries    *prometheus.Desc
	cacheBytes      *prometheus.Desc
	cacheCeiling    *prometheus.Desc
	cacheHits       *prometheus.Desc
	cacheMisses     *prometheus.Desc
	cachePuts       *prometheus.Desc
	cacheEvictions  *prometheus.Desc
	cacheOrphans    *prometheus.Desc
	renderResults   *prometheus.Desc
	renderPreloads  *prometheus.Desc
	renderFailures  *prometheus.Desc
	queueActions    *prometheus.Desc
	queueOldestAge  *prometheus.Desc
	syncConflicts   *prometheus.Desc
	syncPhase       *prometheus.Desc
	syncLastCycleTS *prometheus.Desc
}

// New constructs a Collector over services and registers it with reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, services *service.Services, log *logger.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		services: services,
		logger:   log,

		cacheEntries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries"),
			"Number of cached artifacts", nil, nil),
		cacheBytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "size_bytes"),
			"Summed size of cached artifacts", nil, nil),
		cacheCeiling: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "size_ceiling_bytes"),
			"Configured cache size ceiling", nil, nil),
		cacheHits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hits_total"),
			"Cache hits since start", nil, nil),
		cacheMisses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "misses_total"),
			"Cache misses since start", nil, nil),
		cachePuts: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "puts_total"),
			"Artifacts stored since start", nil, nil),
		cacheEvictions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "evictions_total"),
			"Entries evicted since start", nil, nil),
		cacheOrphans: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "orphans_repaired_total"),
			"Metadata/blob orphans repaired since start", nil, nil),

		renderResults: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "render", "results_total"),
			"Render results by origin tier", []string{"origin"}, nil),
		renderPreloads: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "render", "preloads_total"),
			"Pages rendered ahead of a request", nil, nil),
		renderFailures: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "render", "failures_total"),
			"Render requests no tier could serve", nil, nil),

		queueActions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "queue", "actions"),
			"Queued offline actions by state", []string{"state"}, nil),
		queueOldestAge: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "queue", "oldest_pending_age_seconds"),
			"Age of the oldest pending action, 0 when the queue is empty", nil, nil),

		syncConflicts: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sync", "open_conflicts"),
			"Unresolved sync conflicts", nil, nil),
		syncPhase: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sync", "phase"),
			"Current sync phase: 0=idle 1=pulling 2=applying 3=pushing 4=resolving", nil, nil),
		syncLastCycleTS: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sync", "last_cycle_timestamp_seconds"),
			"Unix time the last sync cycle finished, 0 when none ran", nil, nil),
	}

	reg.MustRegister(c)
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cacheEntries
	ch <- c.cacheBytes
	ch <- c.cacheCeiling
	ch <- c.cacheHits
	ch <- c.cacheMisses
	ch <- c.cachePuts
	ch <- c.cacheEvictions
	ch <- c.cacheOrphans
	ch <- c.renderResults
	ch <- c.renderPreloads
	ch <- c.renderFailures
	ch <- c.queueActions
	ch <- c.queueOldestAge
	ch <- c.syncConflicts
	ch <- c.syncPhase
	ch <- c.syncLastCycleTS
}

// Collect implements prometheus.Collector. A snapshot that cannot be
// read is skipped; the scrape still carries the remaining groups.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	c.collectCache(ctx, ch)
	c.collectRender(ch)
	c.collectQueue(ctx, ch)
	c.collectSync(ctx, ch)
}

func (c *Collector) collectCache(ctx context.Context, ch chan<- prometheus.Metric) {
	stats, err := c.services.Cache.Stats(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("cache stats scrape failed")
		return
	}

	ch <- prometheus.MustNewConstMetric(c.cacheEntries, prometheus.GaugeValue, float64(stats.Entries))
	ch <- prometheus.MustNewConstMetric(c.cacheBytes, prometheus.GaugeValue, float64(stats.TotalBytes))
	ch <- prometheus.MustNewConstMetric(c.cacheCeiling, prometheus.GaugeValue, float64(stats.MaxBytes))
	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.cacheMisses, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(c.cachePuts, prometheus.CounterValue, float64(stats.Puts))
	ch <- prometheus.MustNewConstMetric(c.cacheEvictions, prometheus.CounterValue, float64(stats.Evictions))
	ch <- prometheus.MustNewConstMetric(c.cacheOrphans, prometheus.CounterValue, float64(stats.OrphansRepaired))
}

func (c *Collector) collectRender(ch chan<- prometheus.Metric) {
	stats := c.services.Render.Stats()

	ch <- prometheus.MustNewConstMetric(c.renderResults, prometheus.CounterValue, float64(stats.CacheHits), "cache")
	ch <- prometheus.MustNewConstMetric(c.renderResults, prometheus.CounterValue, float64(stats.RemoteRenders), "remote")
	ch <- prometheus.MustNewConstMetric(c.renderResults, prometheus.CounterValue, float64(stats.NativeRenders), "native")
	ch <- prometheus.MustNewConstMetric(c.renderPreloads, prometheus.CounterValue, float64(stats.Preloads))
	ch <- prometheus.MustNewConstMetric(c.renderFailures, prometheus.CounterValue, float64(stats.Failures))
}

func (c *Collector) collectQueue(ctx context.Context, ch chan<- prometheus.Metric) {
	stats, err := c.services.Queue.Stats(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("queue stats scrape failed")
		return
	}

	ch <- prometheus.MustNewConstMetric(c.queueActions, prometheus.GaugeValue, float64(stats.Pending), "pending")
	ch <- prometheus.MustNewConstMetric(c.queueActions, prometheus.GaugeValue, float64(stats.InFlight), "in_flight")
	ch <- prometheus.MustNewConstMetric(c.queueActions, prometheus.GaugeValue, float64(stats.Failed), "failed")

	var age float64
	if stats.OldestPending != nil {
		age = time.Since(*stats.OldestPending).Seconds()
	}
	ch <- prometheus.MustNewConstMetric(c.queueOldestAge, prometheus.GaugeValue, age)
}

func (c *Collector) collectSync(ctx context.Context, ch chan<- prometheus.Metric) {
	status, err := c.services.Sync.Status(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("sync status scrape failed")
		return
	}

	ch <- prometheus.MustNewConstMetric(c.syncConflicts, prometheus.GaugeValue, float64(status.UnresolvedConflicts))
	ch <- prometheus.MustNewConstMetric(c.syncPhase, prometheus.GaugeValue, float64(status.Phase))

	var finished float64
	if status.LastCycleFinished != nil {
		finished = float64(status.LastCycleFinished.Unix())
	}
	ch <- prometheus.MustNewConstMetric(c.syncLastCycleTS, prometheus.GaugeValue, finished)
}

// Compile-time check: ensure Collector implements prometheus.Collector.
var _ prometheus.Collector = (*Collector)(nil)
