// Package core provides the host runtime's leaf types: keyboard and pointer
// edge trackers, colour decoding, surface sizes and the error taxonomy.
// It has no external dependencies so the state machines stay pure and testable.
package core
