package ros

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Helpers shared by message types for the variable-length parts of the
// ROS wire format. Fixed-size fields are written with encoding/binary.

func WriteString(buf *bytes.Buffer, s string) {
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

func ReadString(r *bytes.Reader) (string, error) {
	n, err := ReadLength(r)
	if err != nil {
		return "", err
	}
	data := make([]byte, n)
	if _, err := r.Read(data); err != nil && n > 0 {
		return "", errors.Wrap(err, "read string")
	}
	return string(data), nil
}

func WriteTime(buf *bytes.Buffer, t Time) {
	_ = binary.Write(buf, binary.LittleEndian, t.Sec)
	_ = binary.Write(buf, binary.LittleEndian, t.NSec)
}

func ReadTime(r *bytes.Reader) (Time, error) {
	var t Time
	if err := binary.Read(r, binary.LittleEndian, &t.Sec); err != nil {
		return t, errors.Wrap(err, "read time")
	}
	if err := binary.Read(r, binary.LittleEndian, &t.NSec); err != nil {
		return t, errors.Wrap(err, "read time")
	}
	return t, nil
}

func WriteDuration(buf *bytes.Buffer, d Duration) {
	_ = binary.Write(buf, binary.LittleEndian, d.Sec)
	_ = binary.Write(buf, binary.LittleEndian, d.NSec)
}

func ReadDuration(r *bytes.Reader) (Duration, error) {
	var d Duration
	if err := binary.Read(r, binary.LittleEndian, &d.Sec); err != nil {
		return d, errors.Wrap(err, "read duration")
	}
	if err := binary.Read(r, binary.LittleEndian, &d.NSec); err != nil {
		return d, errors.Wrap(err, "read duration")
	}
	return d, nil
}

// WriteLength writes the element count of a variable-length array.
func WriteLength(buf *bytes.Buffer, n int) {
	_ = binary.Write(buf, binary.LittleEndian, uint32(n))
}

// ReadLength reads an array or string length, rejecting lengths longer
// than the remaining input.
func ReadLength(r *bytes.Reader) (int, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, errors.Wrap(err, "read length")
	}
	if int64(n) > int64(r.Len()) {
		return 0, errors.Errorf("length %d exceeds remaining %d bytes", n, r.Len())
	}
	return int(n), nil
}
