package session

import (
	"github.com/cyclone-msm/cyclone-msm/field"
	"github.com/cyclone-msm/cyclone-msm/stream"
	"github.com/cyclone-msm/cyclone-msm/transport"
)

// writeElementPacket packs e's six little-endian 64-bit limbs into a
// fresh packet's low 48 bytes and writes it to st.
func writeElementPacket(st *stream.Stream, e field.Element) {
	p := transport.NewPacket()
	limbs := field.ToLimbs(e)
	for i, l := range limbs {
		p.PutUint64(i*8, l)
	}
	st.Write(p)
}
