//go:build !preview

package main

import (
	"fmt"
	"os"

	"github.com/fourey/lineart/cli"
)

// runWithPreview is only available in builds tagged "preview" (-tags preview),
// which pull in the Gio UI stack; a headless build falls back to the
// ordinary batch path and logs that -preview was ignored.
func runWithPreview(opts cli.Options) {
	fmt.Fprintln(os.Stderr, "lineart: built without the preview tag, running headless")
	if err := cli.Run(opts); err != nil {
		fatal(err)
	}
}
