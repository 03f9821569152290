// Package shell holds the imperative-shell helpers shared by the command services:
// logger and metrics interfaces, the optimistic-concurrency retry loop, handler results
// and the logging and metrics helpers every service uses in the same way.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
