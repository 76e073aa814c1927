package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/classwriter/classfile"
	"github.com/dhamidi/classwriter/format"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Parse a .class file and print its attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := classfile.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "line":
				encoder = format.NewLineEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s (expected json or line)", outputFormat)
			}

			if err := encoder.Encode(cf); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}
