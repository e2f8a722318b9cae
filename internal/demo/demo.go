// Package demo ships the script played when no script is given.
package demo

import (
	"bytes"
	_ "embed"

	"termreel/internal/script"
)

//go:embed demo.yaml
var source []byte

// Script returns a freshly decoded copy of the demo.
func Script(opts script.Options) (*script.Script, error) {
	return script.Load(bytes.NewReader(source), opts)
}
