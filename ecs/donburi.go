package ecs

import (
	"github.com/phanxgames/party"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EmitterEventType is the Donburi event type for emitter lifecycle events.
var EmitterEventType = events.NewEventType[party.EmitterEvent]()

// EmitterState mirrors a live emitter.
type EmitterState struct {
	ID        party.EmitterID
	Particles int
	Loops     int
}

// Emitter is the component attached to every mirrored emitter entity.
var Emitter = donburi.NewComponentType[EmitterState]()

// DonburiSink is a party.EventSink backed by a Donburi world.
type DonburiSink struct {
	world    donburi.World
	entities map[party.EmitterID]donburi.Entity
}

// NewDonburiSink creates a sink for world. Events are queued on
// EmitterEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{
		world:    world,
		entities: make(map[party.EmitterID]donburi.Entity),
	}
}

// EmitEvent publishes event and keeps the emitter entities in step.
func (s *DonburiSink) EmitEvent(event party.EmitterEvent) {
	switch event.Type {
	case party.EmitterAdded:
		ent := s.world.Create(Emitter)
		Emitter.SetValue(s.world.Entry(ent), EmitterState{
			ID:        event.EmitterID,
			Particles: event.Particles,
			Loops:     event.Loops,
		})
		s.entities[event.EmitterID] = ent
	case party.EmitterExpired, party.EmitterRemoved:
		if ent, ok := s.entities[event.EmitterID]; ok {
			if s.world.Valid(ent) {
				s.world.Remove(ent)
			}
			delete(s.entities, event.EmitterID)
		}
	}
	EmitterEventType.Publish(s.world, event)
}

// Entity returns the entity mirroring the emitter with the given ID.
func (s *DonburiSink) Entity(id party.EmitterID) (donburi.Entity, bool) {
	ent, ok := s.entities[id]
	return ent, ok
}

// Sync copies the current particle and loop counts of scene's emitters into
// their entities.
func (s *DonburiSink) Sync(scene *party.Scene) {
	for _, e := range scene.Emitters() {
		ent, ok := s.entities[e.ID()]
		if !ok || !s.world.Valid(ent) {
			continue
		}
		state := Emitter.Get(s.world.Entry(ent))
		state.Particles = e.Len()
		state.Loops = e.CurrentLoop()
	}
}
