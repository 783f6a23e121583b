package wlwire

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// messageHeader is the 8-byte header preceding every request/event:
// object id, then opcode (low 16 bits) and total size including header
// (high 16 bits). This implementation always encodes and decodes words
// little-endian.
type messageHeader struct {
	ObjectID uint32
	Opcode   uint16
	Size     uint16
}

// encoder accumulates a request body and the file descriptors riding
// alongside it via SCM_RIGHTS.
type encoder struct {
	buf []byte
	fds []int
}

func newEncoder() *encoder {
	return &encoder{buf: make([]byte, 0, 32)}
}

func (e *encoder) putUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
}

func (e *encoder) putInt32(v int32) { e.putUint32(uint32(v)) }

func (e *encoder) putFixed(v float64) { e.putInt32(int32(v * 256)) }

func (e *encoder) putString(s string) {
	n := uint32(len(s) + 1)
	e.putUint32(n)
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, 0)
	for len(e.buf)%4 != 0 {
		e.buf = append(e.buf, 0)
	}
}

func (e *encoder) putNewID(id uint32) { e.putUint32(id) }

func (e *encoder) putFD(fd int) { e.fds = append(e.fds, fd) }

// decoder reads a fixed event body produced by the compositor.
type decoder struct {
	buf []byte
	off int
}

func newDecoder(buf []byte) *decoder { return &decoder{buf: buf} }

func (d *decoder) uint32() (uint32, error) {
	if d.off+4 > len(d.buf) {
		return 0, fmt.Errorf("wlwire: short read decoding uint32")
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += 4
	return v, nil
}

func (d *decoder) int32() (int32, error) {
	v, err := d.uint32()
	return int32(v), err
}

// fixed decodes a 24.8 signed fixed-point value into a float64.
func (d *decoder) fixed() (float64, error) {
	v, err := d.int32()
	if err != nil {
		return 0, err
	}
	return float64(v) / 256, nil
}

func (d *decoder) string() (string, error) {
	n, err := d.uint32()
	if err != nil {
		return "", err
	}
	if d.off+int(n) > len(d.buf) {
		return "", fmt.Errorf("wlwire: short read decoding string")
	}
	s := string(d.buf[d.off : d.off+int(n)-1]) // drop trailing NUL
	d.off += int(n)
	for d.off%4 != 0 {
		d.off++
	}
	return s, nil
}

// sendMessage writes a framed request to fd, passing any accompanying file
// descriptors via an SCM_RIGHTS ancillary message.
func sendMessage(fd int, objectID uint32, opcode uint16, e *encoder) error {
	size := uint16(8 + len(e.buf))
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], objectID)
	binary.LittleEndian.PutUint32(header[4:8], uint32(opcode)|uint32(size)<<16)

	msg := append(header, e.buf...)

	if len(e.fds) == 0 {
		_, err := unix.Write(fd, msg)
		return err
	}

	rights := unix.UnixRights(e.fds...)
	return unix.Sendmsg(fd, msg, rights, nil, 0)
}

// recvMessage reads one framed event (and any passed file descriptors)
// from fd. It blocks; callers are expected to have already confirmed fd is
// readable.
func recvMessage(fd int) (objectID uint32, opcode uint16, body []byte, fds []int, err error) {
	headerBuf := make([]byte, 8)
	oob := make([]byte, unix.CmsgSpace(4*8))

	n, oobn, _, _, err := unix.Recvmsg(fd, headerBuf, oob, 0)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	if n == 0 {
		return 0, 0, nil, nil, fmt.Errorf("wlwire: connection closed")
	}
	if n < 8 {
		return 0, 0, nil, nil, fmt.Errorf("wlwire: short header read")
	}

	objectID = binary.LittleEndian.Uint32(headerBuf[0:4])
	sizeAndOp := binary.LittleEndian.Uint32(headerBuf[4:8])
	opcode = uint16(sizeAndOp)
	size := uint16(sizeAndOp >> 16)

	if oobn > 0 {
		cmsgs, perr := unix.ParseSocketControlMessage(oob[:oobn])
		if perr == nil {
			for _, c := range cmsgs {
				got, ferr := unix.ParseUnixRights(&c)
				if ferr == nil {
					fds = append(fds, got...)
				}
			}
		}
	}

	remaining := int(size) - 8
	body = make([]byte, 0, remaining)
	for len(body) < remaining {
		chunk := make([]byte, remaining-len(body))
		rn, err := unix.Read(fd, chunk)
		if err != nil {
			return 0, 0, nil, nil, err
		}
		if rn == 0 {
			return 0, 0, nil, nil, fmt.Errorf("wlwire: connection closed mid-message")
		}
		body = append(body, chunk[:rn]...)
	}

	return objectID, opcode, body, fds, nil
}
