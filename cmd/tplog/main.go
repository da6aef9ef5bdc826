// Command tplog encodes raw log files into packet-framed archives,
// decodes them back to text, and runs keyword queries over them without
// decompressing the whole archive.
package main

import (
	"os"

	"github.com/flowlens/tplog/cmd/tplog/commands"
)

func main() {
	os.Exit(commands.Execute())
}
