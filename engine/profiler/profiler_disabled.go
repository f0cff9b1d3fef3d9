//go:build !profile

package profiler

import "time"

// Enabled reports whether the binary was built with the profile tag.
const Enabled = false

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func Totals() map[string]time.Duration { return nil }

func Dump(path string) error { return nil }
