package cli

import (
	"fmt"
	"io"

	"github.com/mdp/qrterminal/v3"
)

// RenderQR draws a scannable QR code for the payload in the terminal,
// falling back to the plain payload when rendering is not possible.
func RenderQR(w io.Writer, payload string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(w, "QR (text): %s\n", payload)
		}
	}()

	qrterminal.GenerateWithConfig(payload, qrterminal.Config{
		Level:      qrterminal.L,
		Writer:     w,
		HalfBlocks: true,
		QuietZone:  1,
	})
}
