//go:build tinygo

package main

import (
	"dotmatrix/app"
	"dotmatrix/hal"
)

func main() {
	app.Run(hal.New())
}
