// Package raster scan converts shapes into per row spans of cells.
package raster

import (
	"sort"

	"ansiedit/internal/model"
)

// Span is a run of cells on row Y from X0 to X1 inclusive.
type Span struct {
	Y      int
	X0, X1 int
}

// ScanLines is the scan region of one drag gesture: a set of cells kept as
// horizontal spans per row.
type ScanLines struct {
	rows map[int][]Span
}

func New() *ScanLines {
	return &ScanLines{rows: make(map[int][]Span)}
}

// AddSpan adds cells x0..x1 of row y, in either order.
func (s *ScanLines) AddSpan(y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	s.rows[y] = mergeSpan(s.rows[y], Span{Y: y, X0: x0, X1: x1})
}

func (s *ScanLines) AddPoint(p model.Position) {
	s.AddSpan(p.Y, p.X, p.X)
}

// mergeSpan inserts n into the sorted, disjoint row, joining touching runs.
func mergeSpan(row []Span, n Span) []Span {
	res := make([]Span, 0, len(row)+1)
	inserted := false
	for _, sp := range row {
		switch {
		case sp.X1+1 < n.X0:
			res = append(res, sp)
		case n.X1+1 < sp.X0:
			if !inserted {
				res = append(res, n)
				inserted = true
			}
			res = append(res, sp)
		default:
			n.X0 = min(n.X0, sp.X0)
			n.X1 = max(n.X1, sp.X1)
		}
	}
	if !inserted {
		res = append(res, n)
	}
	return res
}

func (s *ScanLines) Contains(p model.Position) bool {
	for _, sp := range s.rows[p.Y] {
		if p.X >= sp.X0 && p.X <= sp.X1 {
			return true
		}
	}
	return false
}

// Spans returns every span ordered by row, then column.
func (s *ScanLines) Spans() []Span {
	ys := make([]int, 0, len(s.rows))
	for y := range s.rows {
		ys = append(ys, y)
	}
	sort.Ints(ys)
	var res []Span
	for _, y := range ys {
		res = append(res, s.rows[y]...)
	}
	return res
}

// Len is the number of cells in the region.
func (s *ScanLines) Len() int {
	n := 0
	for _, row := range s.rows {
		for _, sp := range row {
			n += sp.X1 - sp.X0 + 1
		}
	}
	return n
}

// Fill calls fn for every cell of the region.
func (s *ScanLines) Fill(fn func(model.Position)) {
	for _, sp := range s.Spans() {
		for x := sp.X0; x <= sp.X1; x++ {
			fn(model.Position{X: x, Y: sp.Y})
		}
	}
}

// Outline calls fn for the cells of the region that have a 4-connected
// neighbour outside it.
func (s *ScanLines) Outline(fn func(model.Position)) {
	s.Fill(func(p model.Position) {
		if !s.Contains(model.Position{X: p.X - 1, Y: p.Y}) ||
			!s.Contains(model.Position{X: p.X + 1, Y: p.Y}) ||
			!s.Contains(model.Position{X: p.X, Y: p.Y - 1}) ||
			!s.Contains(model.Position{X: p.X, Y: p.Y + 1}) {
			fn(p)
		}
	})
}

// Positions lists the cells of the region in row order.
func (s *ScanLines) Positions() []model.Position {
	var res []model.Position
	s.Fill(func(p model.Position) { res = append(res, p) })
	return res
}
