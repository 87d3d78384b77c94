// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package env

import (
	"fmt"
	"strings"

	"github.com/aixi-go/aixi/pkg/config"
	"github.com/aixi-go/aixi/pkg/random"
)

// PacMan actions.
const (
	pmUp    = 0
	pmRight = 1
	pmDown  = 2
	pmLeft  = 3
)

// PacMan rewards, applied cumulatively within a single cycle and then
// shifted by +61 so the worst case (wall collision while caught) maps
// to 0.
const (
	pmRewardMove    = -1
	pmRewardWall    = -10
	pmRewardFood    = 10
	pmRewardCaught  = -50
	pmRewardAllFood = 100
	// pmRewardOffset shifts the worst single-cycle combination (a wall
	// collision while caught, on top of the per-step move penalty) to 0.
	pmRewardOffset = -(pmRewardMove + pmRewardWall + pmRewardCaught)
)

// Ghosts pursue PacMan for this many steps once within range, then
// must fall outside the sniff-cooldown window before pursuing again.
const (
	pmPursuitSteps  = 5
	pmSniffRange    = 5
	pmSniffCooldown = -2
)

const (
	pmCellWall  = '@'
	pmCellEmpty = '.'
)

var pacmanMap = []string{
	"@@@@@@@@@@@@@",
	"@...@.....@.@",
	"@.@.@.@@@.@.@",
	"@.@.......@.@",
	"@.@@@.@.@@@.@",
	"@...........@",
	"@.@@@.@.@@@.@",
	"@.........@.@",
	"@.@.@@@@@.@.@",
	"@.@.......@.@",
	"@@@@@@@@@@@@@",
}

type pmGhost struct {
	x, y  int
	sniff int
}

// PacMan is a partially observable rendition of the arcade maze game.
// The agent senses nearby walls, ghosts in its direct line of sight,
// and the proximity of food, but never observes the full board. Ghosts
// wander randomly until PacMan strays within sniffing range, at which
// point they pursue him greedily for a fixed number of steps before
// reverting to wandering.
type PacMan struct {
	rng *random.Source

	grid      [][]byte
	rows, cols int

	pacX, pacY int
	ghosts     [4]pmGhost

	poweredUp bool
	powerLeft int

	pelletsRemaining int

	observation int
	reward      int
	action      int
}

// NewPacMan constructs a PacMan environment.
func NewPacMan(_ config.Options, rng *random.Source) *PacMan {
	p := &PacMan{rng: rng}
	p.resetEpisode()
	return p
}

func (p *PacMan) resetEpisode() {
	p.grid = make([][]byte, len(pacmanMap))
	for r, row := range pacmanMap {
		p.grid[r] = []byte(row)
	}
	p.rows, p.cols = len(p.grid), len(p.grid[0])

	p.pelletsRemaining = 0
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			if p.grid[r][c] == pmCellEmpty && p.rng.Bool(0.5) {
				if p.rng.Bool(0.1) {
					p.grid[r][c] = 'P' // power pill
				} else {
					p.grid[r][c] = 'o' // food pellet
				}
				p.pelletsRemaining++
			}
		}
	}

	p.pacX, p.pacY = p.randomOpenCell()
	p.grid[p.pacY][p.pacX] = pmCellEmpty

	for i := range p.ghosts {
		x, y := p.randomOpenCell()
		p.ghosts[i] = pmGhost{x: x, y: y}
	}

	p.poweredUp = false
	p.powerLeft = 0
	p.reward = 0
	p.updateObservation()
}

func (p *PacMan) randomOpenCell() (int, int) {
	for {
		x, y := p.rng.IntRange(p.cols), p.rng.IntRange(p.rows)
		if p.grid[y][x] != pmCellWall {
			return x, y
		}
	}
}

func (p *PacMan) isWall(x, y int) bool {
	if x < 0 || y < 0 || x >= p.cols || y >= p.rows {
		return true
	}
	return p.grid[y][x] == pmCellWall
}

func manhattan(x1, y1, x2, y2 int) int {
	return abs(x1-x2) + abs(y1-y2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func delta(action int) (int, int) {
	switch action {
	case pmUp:
		return 0, -1
	case pmRight:
		return 1, 0
	case pmDown:
		return 0, 1
	default:
		return -1, 0
	}
}

func (p *PacMan) MaxAction() int      { return 3 }
func (p *PacMan) MaxObservation() int { return (1 << 16) - 1 }
func (p *PacMan) MaxReward() int {
	return pmRewardMove + pmRewardFood + pmRewardAllFood + pmRewardOffset
}
func (p *PacMan) Observation() int    { return p.observation }
func (p *PacMan) Reward() int         { return p.reward }
func (p *PacMan) IsFinished() bool    { return false }

func (p *PacMan) PerformAction(action int) {
	if !IsValidAction(p, action) {
		panic(fmt.Sprintf("pacman: invalid action %d", action))
	}
	p.action = action
	p.reward = pmRewardMove

	dx, dy := delta(action)
	nx, ny := p.pacX+dx, p.pacY+dy
	if p.isWall(nx, ny) {
		p.reward += pmRewardWall
	} else {
		p.pacX, p.pacY = nx, ny
	}

	switch p.grid[p.pacY][p.pacX] {
	case 'o':
		p.grid[p.pacY][p.pacX] = pmCellEmpty
		p.reward += pmRewardFood
		p.pelletsRemaining--
		if p.pelletsRemaining == 0 {
			p.reward += pmRewardAllFood
			p.reward += pmRewardOffset
			p.resetEpisode()
			return
		}
	case 'P':
		p.grid[p.pacY][p.pacX] = pmCellEmpty
		p.poweredUp = true
		p.powerLeft = pmPursuitSteps
	}

	caught := false
	for i := range p.ghosts {
		p.moveGhost(&p.ghosts[i])
		if p.ghosts[i].x == p.pacX && p.ghosts[i].y == p.pacY {
			if p.poweredUp {
				x, y := p.randomOpenCell()
				p.ghosts[i] = pmGhost{x: x, y: y}
			} else {
				caught = true
			}
		}
	}
	if caught {
		p.reward += pmRewardCaught
	}

	if p.poweredUp {
		p.powerLeft--
		p.poweredUp = p.powerLeft > 0
	}

	p.reward += pmRewardOffset
	p.updateObservation()

	if caught {
		p.resetEpisode()
	}
}

// moveGhost advances a single ghost: pursuing greedily towards PacMan
// while its sniff counter is positive, wandering randomly otherwise.
func (p *PacMan) moveGhost(g *pmGhost) {
	if g.sniff == 0 && manhattan(p.pacX, p.pacY, g.x, g.y) <= pmSniffRange {
		g.sniff = pmPursuitSteps
	}

	if g.sniff > 0 {
		best := manhattan(p.pacX, p.pacY, g.x, g.y)
		bestX, bestY := g.x, g.y
		for _, a := range []int{pmUp, pmRight, pmDown, pmLeft} {
			dx, dy := delta(a)
			nx, ny := g.x+dx, g.y+dy
			if p.isWall(nx, ny) {
				continue
			}
			if d := manhattan(p.pacX, p.pacY, nx, ny); d < best {
				best, bestX, bestY = d, nx, ny
			}
		}
		g.x, g.y = bestX, bestY
		g.sniff--
		if g.sniff == 0 {
			g.sniff = pmSniffCooldown // enter cooldown before re-triggering
		}
		return
	}

	if g.sniff < 0 {
		g.sniff++
	}

	for attempts := 0; attempts < 4; attempts++ {
		dx, dy := delta(p.rng.IntRange(4))
		nx, ny := g.x+dx, g.y+dy
		if !p.isWall(nx, ny) {
			g.x, g.y = nx, ny
			return
		}
	}
}

// updateObservation packs wall, ghost-sighting, food-smell/sight, and
// power-pill bits into a 16-bit percept.
func (p *PacMan) updateObservation() {
	obs := 0
	if p.isWall(p.pacX, p.pacY-1) {
		obs |= 1 << 0
	}
	if p.isWall(p.pacX+1, p.pacY) {
		obs |= 1 << 1
	}
	if p.isWall(p.pacX, p.pacY+1) {
		obs |= 1 << 2
	}
	if p.isWall(p.pacX-1, p.pacY) {
		obs |= 1 << 3
	}

	for _, g := range p.ghosts {
		if p.lineOfSight(g.x, g.y) {
			if g.y < p.pacY {
				obs |= 1 << 4
			}
			if g.x > p.pacX {
				obs |= 1 << 5
			}
			if g.y > p.pacY {
				obs |= 1 << 6
			}
			if g.x < p.pacX {
				obs |= 1 << 7
			}
		}
	}

	smellRange := 0
	sightBits := 0
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			if p.grid[r][c] != 'o' && p.grid[r][c] != 'P' {
				continue
			}
			d := manhattan(p.pacX, p.pacY, c, r)
			if d <= 2 {
				smellRange |= 1
			} else if d <= 3 {
				smellRange |= 2
			} else if d <= 4 {
				smellRange |= 4
			}
			if p.lineOfSight(c, r) {
				if r < p.pacY {
					sightBits |= 1
				}
				if c > p.pacX {
					sightBits |= 2
				}
				if r > p.pacY {
					sightBits |= 4
				}
				if c < p.pacX {
					sightBits |= 8
				}
			}
		}
	}
	obs |= (smellRange & 0x7) << 8
	obs |= (sightBits & 0xF) << 11
	if p.poweredUp {
		obs |= 1 << 15
	}
	p.observation = obs
}

// lineOfSight reports whether (x,y) is visible from PacMan's position
// along one of the four cardinal directions with no wall in between.
func (p *PacMan) lineOfSight(x, y int) bool {
	if x == p.pacX {
		step := 1
		if y < p.pacY {
			step = -1
		}
		for cy := p.pacY + step; cy != y; cy += step {
			if p.isWall(x, cy) {
				return false
			}
		}
		return true
	}
	if y == p.pacY {
		step := 1
		if x < p.pacX {
			step = -1
		}
		for cx := p.pacX + step; cx != x; cx += step {
			if p.isWall(cx, y) {
				return false
			}
		}
		return true
	}
	return false
}

func (p *PacMan) Print() string {
	var b strings.Builder
	fmt.Fprintf(&b, "observation = %d, reward = %d, pellets remaining = %d\n",
		p.observation, p.reward, p.pelletsRemaining)
	grid := make([][]byte, p.rows)
	for r := range p.grid {
		grid[r] = append([]byte{}, p.grid[r]...)
	}
	grid[p.pacY][p.pacX] = 'C'
	for i, g := range p.ghosts {
		grid[g.y][g.x] = byte('A' + i)
	}
	for _, row := range grid {
		b.Write(row)
		b.WriteString("\n")
	}
	return b.String()
}
