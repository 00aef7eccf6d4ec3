// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug
// +build debug

package safenet

import (
	"log"
	"os"
)

const _LOGLEVEL = 1

func init() {
	log.SetOutput(os.Stdout)
}
