package attrwriter

import (
	"bytes"
	"fmt"

	"github.com/dhamidi/classwriter/classfile"
)

// writeStackMapTable is the stack-map table writer (§4.3): frame count
// then each frame in order.
func writeStackMapTable(buf *bytes.Buffer, frames []classfile.StackMapFrame) error {
	if err := writeU2(buf, uint16(len(frames))); err != nil {
		return err
	}
	for _, f := range frames {
		if err := writeStackMapFrame(buf, f); err != nil {
			return err
		}
	}
	return nil
}

// writeStackMapFrame is the stack-map frame writer (§4.3). It never
// normalizes frame_type against the variant's shape; it trusts the
// model, exactly as the source does.
func writeStackMapFrame(buf *bytes.Buffer, f classfile.StackMapFrame) error {
	switch frame := f.(type) {
	case classfile.SameFrame:
		buf.WriteByte(frame.Tag)

	case classfile.SameLocalsOneStackItemFrame:
		buf.WriteByte(frame.Tag)
		return writeVerificationType(buf, frame.Stack)

	case classfile.SameLocalsOneStackItemExtendedFrame:
		buf.WriteByte(247)
		if err := writeU2(buf, frame.OffsetDelta); err != nil {
			return err
		}
		return writeVerificationType(buf, frame.Stack)

	case classfile.ChopFrame:
		buf.WriteByte(frame.Tag)
		return writeU2(buf, frame.OffsetDelta)

	case classfile.SameFrameExtended:
		buf.WriteByte(251)
		return writeU2(buf, frame.OffsetDelta)

	case classfile.AppendFrame:
		buf.WriteByte(frame.Tag)
		if err := writeU2(buf, frame.OffsetDelta); err != nil {
			return err
		}
		for _, vt := range frame.Locals {
			if err := writeVerificationType(buf, vt); err != nil {
				return err
			}
		}
		return nil

	case classfile.FullFrame:
		buf.WriteByte(255)
		if err := writeU2(buf, frame.OffsetDelta); err != nil {
			return err
		}
		if err := writeU2(buf, uint16(len(frame.Locals))); err != nil {
			return err
		}
		for _, vt := range frame.Locals {
			if err := writeVerificationType(buf, vt); err != nil {
				return err
			}
		}
		if err := writeU2(buf, uint16(len(frame.Stack))); err != nil {
			return err
		}
		for _, vt := range frame.Stack {
			if err := writeVerificationType(buf, vt); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("attrwriter: unknown stack-map frame type %T", f)
	}
	return nil
}

// writeVerificationType is the verification-type writer (§4.4).
func writeVerificationType(buf *bytes.Buffer, vt classfile.VerificationTypeInfo) error {
	buf.WriteByte(byte(vt.Tag))
	switch vt.Tag {
	case classfile.VerificationObject:
		return writeU2(buf, vt.ClassIndex)
	case classfile.VerificationUninitialized:
		return writeU2(buf, vt.Offset)
	}
	return nil
}
