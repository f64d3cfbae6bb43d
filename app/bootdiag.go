//go:build !(tinygo && bootdebug)

package app

import "dotmatrix/hal"

func bootDiagSetStep(string) {}

func bootDiagStart(hal.HAL) {}
