package main

import (
	"bufio"
	"io"
	"os"

	"github.com/arrowcount/wfreq"
)

// stdinChunkBytes is the stdin read-chunk size; unrelated to the
// counter's own arena block sizing.
const stdinChunkBytes = 64 * 1024

// scanStdin reads stdin in fixed-size chunks, carrying any letters
// trailing a chunk into the next one so a token split across a chunk
// boundary is never counted twice or truncated early.
func scanStdin(c *wfreq.Counter) error {
	r := bufio.NewReaderSize(os.Stdin, stdinChunkBytes)
	chunk := make([]byte, stdinChunkBytes)
	var carry []byte

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf := append(carry, chunk[:n]...)
			carry = nil

			split := len(buf)
			for split > 0 && isASCIILetter(buf[split-1]) {
				split--
			}
			if scanErr := c.Scan(buf[:split]); scanErr != nil {
				return scanErr
			}
			if split < len(buf) {
				carry = append(carry, buf[split:]...)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if len(carry) > 0 {
		if err := c.Scan(carry); err != nil {
			return err
		}
	}
	return nil
}

func isASCIILetter(b byte) bool {
	return (b|0x20)-0x61 < 26
}
