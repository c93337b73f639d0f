package ecs

import "github.com/hajimehoshi/ebiten/v2"

type System interface {
	Update(w *World)
}

// Drawer is implemented by systems that also paint.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

type Scheduler struct {
	systems []System
	drawers []Drawer
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	if d, ok := system.(Drawer); ok {
		s.drawers = append(s.drawers, d)
	}
}

// AddDrawer registers a draw-only pass.
func (s *Scheduler) AddDrawer(d Drawer) {
	if d == nil {
		return
	}
	s.drawers = append(s.drawers, d)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	for _, d := range s.drawers {
		d.Draw(w, screen)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
