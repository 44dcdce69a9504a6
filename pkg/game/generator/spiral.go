package generator

import (
	"iter"

	"dungeonlayout/pkg/engine/world"
)

// spiralTurns is the leg order of the walk: right, up, left, down.
var spiralTurns = [4]world.Direction{world.East, world.North, world.West, world.South}

// Spiral enumerates candidate sites around center as a square spiral.
//
// The walk yields center first, then steps one tile right and turns a
// quarter counter-clockwise after every leg, growing the leg length by one
// every two turns. Every ring is completed before the next one starts. At
// most limit points are produced.
func Spiral(center world.Point, limit int) iter.Seq[world.Point] {
	return func(yield func(world.Point) bool) {
		if limit <= 0 {
			return
		}
		p := center
		if !yield(p) {
			return
		}
		emitted := 1
		run := 1
		for turn := 0; ; turn++ {
			dir := spiralTurns[turn%4].Delta()
			for i := 0; i < run; i++ {
				if emitted >= limit {
					return
				}
				p = p.Add(dir)
				if !yield(p) {
					return
				}
				emitted++
			}
			if turn%2 == 1 {
				run++
			}
		}
	}
}
