package main

import (
	"fmt"
	"os"
	"time"
)

func main() {
	c := &cli{now: time.Now}
	defer c.close()
	if err := newRootCmd(c).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		c.close()
		os.Exit(1)
	}
}
