// Package entities provides core domain entities shared by the compile, run and dispatch paths.
// They carry no behaviour beyond small helpers and are safe to copy.
package entities
