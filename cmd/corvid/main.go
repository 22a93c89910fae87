// Command corvid is a UCI chess engine.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/corvidchess/corvid/internal/uci"
)

var buildVersion = "(devel)"

func main() {
	fmt.Printf("corvid %s, running on %s\n", buildVersion, runtime.GOARCH)

	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")
	log.SetFlags(0)

	u := uci.New()
	u.Engine.Initialize()

	bio := bufio.NewReader(os.Stdin)
	for {
		line, readErr := bio.ReadString('\n')
		if execErr := u.Execute(line); execErr != nil {
			if execErr == uci.ErrQuit {
				return
			}
			log.Println(execErr)
		}
		if readErr != nil {
			return
		}
	}
}
