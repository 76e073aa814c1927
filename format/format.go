// Package format renders a parsed class file for human or machine
// consumption. Encoders mirror the CLI's dump subcommand surface.
package format

import (
	"encoding"

	"github.com/dhamidi/classwriter/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}
