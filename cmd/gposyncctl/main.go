// Command gposyncctl manages accounts and NextCloud login handshakes of a
// gposync server. It talks to the database directly and shares the server's
// configuration.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
