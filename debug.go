// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// +build debug

package scram

import (
	"log"
	"os"
)

const _DEBUG bool = true
const _LOGLEVEL int = 1

func init() {
	log.SetOutput(os.Stdout)
}

// logPass traces entry into a pass with the gate count it is about to
// operate on.
func logPass(name string, g *Graph) {
	if _LOGLEVEL > 0 {
		log.Printf("%s: start, %d gates\n", name, g.NumGates())
	}
}

// logPassDone traces exit from a pass with the gate count afterward.
func logPassDone(name string, g *Graph) {
	if _LOGLEVEL > 0 {
		log.Printf("%s: done, %d gates\n", name, g.NumGates())
	}
}
