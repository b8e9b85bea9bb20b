package main

import (
	"evilground/src/ui"
	"fmt"
	"os"
)

func main() {
	if err := ui.RunEvilGround(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
