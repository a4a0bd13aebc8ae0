/*
Package crc32 fingerprints rectangles of bytes held in a larger buffer, such
as a tile inside an image, without copying them out first.

The checksum is CRC-32 with the normal polynomial, shifted most significant
bit first with no reflection and no final inversion. A zero seed gives the
CRC-32/CKSUM register before its final inversion; a seed of 0xffffffff gives
CRC-32/MPEG-2.
*/
package crc32

// Polynomial is the CRC-32 normal polynomial
const Polynomial = 0x04c11db7

var table = func() (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for k := 0; k < 8; k++ {
			if r&0x80000000 != 0 {
				r = r<<1 ^ Polynomial
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return
}()

// Update returns crc extended by the bytes in p.
func Update(crc uint32, p []byte) uint32 {
	for _, b := range p {
		crc = crc<<8 ^ table[byte(crc>>24)^b]
	}
	return crc
}

// UpdateRows returns crc extended by rows runs of width bytes, the first
// starting at p[0] and each following one stride bytes after the last. The
// result is the same as calling Update on the rows joined together.
func UpdateRows(crc uint32, p []byte, stride, width, rows int) uint32 {
	for y := 0; y < rows; y++ {
		o := y * stride
		crc = Update(crc, p[o:o+width])
	}
	return crc
}
