package sink

import (
	"bufio"
	"bytes"
	"io"
	"iter"

	"github.com/matzehuels/smartview/pkg/draw"
)

// WriteJSON writes the primitives of seq to w as a JSON array and returns
// how many were written.
func WriteJSON(w io.Writer, seq iter.Seq[draw.Primitive]) (int, error) {
	bw := bufio.NewWriter(w)
	bw.WriteString("[")

	var n int
	for p := range seq {
		data, err := p.MarshalJSON()
		if err != nil {
			return n, err
		}
		if n > 0 {
			bw.WriteString(",")
		}
		bw.WriteString("\n")
		bw.Write(data)
		n++
	}

	bw.WriteString("\n]\n")
	return n, bw.Flush()
}

// RenderJSON is [WriteJSON] into memory.
func RenderJSON(seq iter.Seq[draw.Primitive]) ([]byte, int, error) {
	var buf bytes.Buffer
	n, err := WriteJSON(&buf, seq)
	if err != nil {
		return nil, n, err
	}
	return buf.Bytes(), n, nil
}
