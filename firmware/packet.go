package firmware

// PacketSize is the fixed size of every packet in both directions, matching
// the RawHID report size.
const PacketSize = 64

// EncodeStatus builds a fresh status packet: byte 0 carries the current
// level, the remaining bytes are zero padding.
func EncodeStatus(l Level) []byte {
	buf := make([]byte, PacketSize)
	buf[0] = byte(l)
	return buf
}

// DecodeCommand extracts the requested level from an inbound command
// packet. Only byte 0 masked to its low 2 bits is interpreted; everything
// else in the packet is ignored. Returns false for empty packets and for
// the unused level encoding.
func DecodeCommand(buf []byte) (Level, bool) {
	if len(buf) == 0 {
		return Five, false
	}
	return DecodeLevel(buf[0])
}
