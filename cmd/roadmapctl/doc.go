// Package main provides roadmapctl, a command line client for roadmaps and roadmap notes.
//
// roadmapctl is the composition root of the module: it loads the configuration,
// builds the slog logger, the storage backends (memory, PostgreSQL, Redis), the
// event dispatcher and the optional Prometheus collector, and hands them to the
// command facade.
//
// Usage:
//
//	roadmapctl --config roadmap.yaml create --title "Product" --owner alice
//	roadmapctl timeframe add <roadmap-id> --name Q1 --order 0
//	roadmapctl initiative add <roadmap-id> <timeframe-id> --title Auth --priority high
//	roadmapctl show <roadmap-id> -o yaml
package main
