// Command pagesim compares page replacement policies on a simulated
// multiprogrammed machine.
package main

import "github.com/sarchlab/pagesim/pagesim/cmd"

func main() {
	cmd.Execute()
}
