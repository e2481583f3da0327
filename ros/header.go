package ros

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// maxHeaderSize bounds a TCPROS connection header.
const maxHeaderSize = 1 << 20

type header struct {
	key   string
	value string
}

func headerMap(headers []header) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.key] = h.value
	}
	return m
}

// readConnectionHeader reads a length-prefixed list of key=value fields.
func readConnectionHeader(r io.Reader) ([]header, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, errors.Wrap(err, "read header size")
	}
	if size > maxHeaderSize {
		return nil, errors.Errorf("connection header too large: %d bytes", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	var headers []header
	for len(buf) > 0 {
		if len(buf) < 4 {
			return nil, errors.New("truncated header field length")
		}
		n := binary.LittleEndian.Uint32(buf)
		buf = buf[4:]
		if uint32(len(buf)) < n {
			return nil, errors.New("header length overrun")
		}
		field := buf[:n]
		buf = buf[n:]
		sep := bytes.IndexByte(field, '=')
		if sep < 0 {
			return nil, errors.Errorf("header field %q has no '='", field)
		}
		headers = append(headers, header{string(field[:sep]), string(field[sep+1:])})
	}
	return headers, nil
}

// writeConnectionHeader writes headers as a single buffered frame.
func writeConnectionHeader(headers []header, w io.Writer) error {
	var body bytes.Buffer
	for _, h := range headers {
		field := h.key + "=" + h.value
		_ = binary.Write(&body, binary.LittleEndian, uint32(len(field)))
		body.WriteString(field)
	}
	var frame bytes.Buffer
	_ = binary.Write(&frame, binary.LittleEndian, uint32(body.Len()))
	frame.Write(body.Bytes())
	_, err := w.Write(frame.Bytes())
	return errors.Wrap(err, "write header")
}

// writeFrame writes a length-prefixed payload.
func writeFrame(w io.Writer, payload []byte) error {
	var frame bytes.Buffer
	_ = binary.Write(&frame, binary.LittleEndian, uint32(len(payload)))
	frame.Write(payload)
	_, err := w.Write(frame.Bytes())
	return err
}

// readFrame reads a length-prefixed payload.
func readFrame(r io.Reader) ([]byte, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
