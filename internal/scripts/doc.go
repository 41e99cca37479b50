// Package scripts contains the gameplay scripts of the puzzle room. Every
// script registers itself with the engine in init so scene files can refer
// to it by name.
package scripts

import "go.uber.org/zap"

// logger is resolved per call so scripts pick up the logger installed by
// the host after package init.
func logger(name string) *zap.Logger {
	return zap.L().Named(name)
}
