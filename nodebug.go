// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// +build !debug

package scram

const _DEBUG bool = false
const _LOGLEVEL int = 0

func logPass(name string, g *Graph)     {}
func logPassDone(name string, g *Graph) {}
