// Package testdoubles provides spies for the shell.Logger, shell.ContextualLogger and
// shell.MetricsCollector interfaces, for asserting on logging and metrics in tests.
package testdoubles
