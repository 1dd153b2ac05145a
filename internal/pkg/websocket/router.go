// Package websocket routes realtime events to connected clients grouped in
// rooms, and owns the gorilla transport those clients connect through.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// ErrUnknownConnection is returned when joining a room with an unregistered connection
var ErrUnknownConnection = errors.New("connection is not registered")

// Conn is a live client connection the router can deliver to
type Conn interface {
	ID() string
	UserID() uuid.UUID
	Role() models.Role
	// Send queues an encoded message without blocking. It returns false when
	// the message was not queued.
	Send(msg []byte) bool
	Close()
}

// Filter narrows a broadcast. The zero value matches every connection.
type Filter struct {
	Role models.Role `json:"role,omitempty"`
}

func (f Filter) match(c Conn) bool {
	return f.Role == "" || f.Role == c.Role()
}

// UserRoom is the personal room every connection of a user joins
func UserRoom(userID uuid.UUID) string {
	return constants.RoomUserPrefix + userID.String()
}

// RequestRoom groups the participants of a service request
func RequestRoom(requestID uuid.UUID) string {
	return constants.RoomRequestPrefix + requestID.String()
}

// Encode builds the wire form of an event
func Encode(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling %s payload: %w", event, err)
	}
	return json.Marshal(models.WSMessage{Event: event, Data: data})
}

// Router tracks which connections are in which rooms. Delivery is
// at-most-once: an emit to a room with no members is dropped.
type Router struct {
	mu          sync.RWMutex
	conns       map[string]Conn
	rooms       map[string]map[string]Conn
	memberships map[string]map[string]struct{}

	relay    Relay
	presence Presence
}

func NewRouter() *Router {
	return &Router{
		conns:       make(map[string]Conn),
		rooms:       make(map[string]map[string]Conn),
		memberships: make(map[string]map[string]struct{}),
	}
}

// SetRelay mirrors every emit, broadcast and eviction to other nodes
func (r *Router) SetRelay(relay Relay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relay = relay
}

// SetPresence shares which users are connected with the other nodes
func (r *Router) SetPresence(p Presence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presence = p
}

// Reachable reports whether userID has a live connection on this node or,
// when presence is shared, on any other
func (r *Router) Reachable(ctx context.Context, userID uuid.UUID) bool {
	r.mu.RLock()
	local := len(r.rooms[UserRoom(userID)]) > 0
	presence := r.presence
	r.mu.RUnlock()
	if local || presence == nil {
		return local
	}
	online, err := presence.Online(ctx, userID)
	if err != nil {
		logger.Warn("Failed to read presence", logger.String("user_id", userID.String()), logger.Err(err))
		return false
	}
	return online
}

func (r *Router) markOnline(ctx context.Context, conn Conn) {
	r.mu.RLock()
	presence := r.presence
	r.mu.RUnlock()
	if presence == nil {
		return
	}
	if err := presence.Touch(ctx, conn.UserID(), conn.ID()); err != nil {
		logger.Warn("Failed to refresh presence", logger.String("conn_id", conn.ID()), logger.Err(err))
	}
}

func (r *Router) markOffline(ctx context.Context, conn Conn) {
	r.mu.RLock()
	presence := r.presence
	r.mu.RUnlock()
	if presence == nil {
		return
	}
	if err := presence.Remove(ctx, conn.UserID(), conn.ID()); err != nil {
		logger.Warn("Failed to clear presence", logger.String("conn_id", conn.ID()), logger.Err(err))
	}
}

// Register makes conn addressable. Registering an id twice replaces the old
// connection and drops its memberships.
func (r *Router) Register(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[conn.ID()]; ok {
		r.dropLocked(conn.ID())
	}
	r.conns[conn.ID()] = conn
	r.memberships[conn.ID()] = make(map[string]struct{})
}

// Unregister forgets the connection and all of its room memberships
func (r *Router) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropLocked(connID)
}

func (r *Router) dropLocked(connID string) {
	for room := range r.memberships[connID] {
		r.leaveLocked(connID, room)
	}
	delete(r.memberships, connID)
	delete(r.conns, connID)
}

// JoinRoom adds the connection to room. Joining twice is a no-op.
func (r *Router) JoinRoom(connID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return ErrUnknownConnection
	}
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]Conn)
		r.rooms[room] = members
	}
	members[connID] = conn
	r.memberships[connID][room] = struct{}{}
	return nil
}

// LeaveRoom removes the connection from room. Leaving a room the connection
// is not in is a no-op.
func (r *Router) LeaveRoom(connID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(connID, room)
}

func (r *Router) leaveLocked(connID, room string) {
	if members, ok := r.rooms[room]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	if rooms, ok := r.memberships[connID]; ok {
		delete(rooms, room)
	}
}

// EvictExcept removes from room every connection whose user is not in keep,
// on this node and on the others. It returns how many local connections left.
func (r *Router) EvictExcept(room string, keep ...uuid.UUID) int {
	n := r.RemoveExcept(room, keep)
	r.publish(Envelope{Room: room, Evict: true, Keep: keep})
	return n
}

// RemoveExcept removes the local connections of room whose user is not in keep
func (r *Router) RemoveExcept(room string, keep []uuid.UUID) int {
	allowed := make(map[uuid.UUID]struct{}, len(keep))
	for _, id := range keep {
		allowed[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var evicted []string
	for id, c := range r.rooms[room] {
		if _, ok := allowed[c.UserID()]; !ok {
			evicted = append(evicted, id)
		}
	}
	for _, id := range evicted {
		r.leaveLocked(id, room)
	}
	return len(evicted)
}

// Members returns the ids of the connections in room, sorted
func (r *Router) Members(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.rooms[room]))
	for id := range r.rooms[room] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// InRoom reports whether the connection is a member of room
func (r *Router) InRoom(connID, room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[room][connID]
	return ok
}

// ConnectionCount returns the number of registered connections
func (r *Router) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Emit sends event to every member of room on this node and returns how many
// connections accepted it. Zero means the event was dropped locally.
func (r *Router) Emit(room, event string, payload interface{}) int {
	msg, err := Encode(event, payload)
	if err != nil {
		logger.Error("Dropping event", logger.String("room", room), logger.String("event", event), logger.Err(err))
		return 0
	}
	n := r.DeliverRoom(room, msg)
	r.publish(Envelope{Room: room, Event: event, Message: msg})
	return n
}

// EmitTo sends event to a single connection
func (r *Router) EmitTo(connID, event string, payload interface{}) bool {
	msg, err := Encode(event, payload)
	if err != nil {
		logger.Error("Dropping event", logger.String("conn_id", connID), logger.String("event", event), logger.Err(err))
		return false
	}
	r.mu.RLock()
	conn, ok := r.conns[connID]
	r.mu.RUnlock()
	return ok && conn.Send(msg)
}

// Broadcast sends event to every connection matching filter on this node
func (r *Router) Broadcast(event string, payload interface{}, filter Filter) int {
	msg, err := Encode(event, payload)
	if err != nil {
		logger.Error("Dropping broadcast", logger.String("event", event), logger.Err(err))
		return 0
	}
	n := r.DeliverBroadcast(filter, msg)
	f := filter
	r.publish(Envelope{Broadcast: true, Filter: &f, Event: event, Message: msg})
	return n
}

// DeliverRoom hands an encoded message to the local members of room
func (r *Router) DeliverRoom(room string, msg []byte) int {
	r.mu.RLock()
	targets := make([]Conn, 0, len(r.rooms[room]))
	for _, c := range r.rooms[room] {
		targets = append(targets, c)
	}
	r.mu.RUnlock()
	return deliver(targets, msg)
}

// DeliverBroadcast hands an encoded message to the local connections matching filter
func (r *Router) DeliverBroadcast(filter Filter, msg []byte) int {
	r.mu.RLock()
	targets := make([]Conn, 0, len(r.conns))
	for _, c := range r.conns {
		if filter.match(c) {
			targets = append(targets, c)
		}
	}
	r.mu.RUnlock()
	return deliver(targets, msg)
}

func deliver(targets []Conn, msg []byte) int {
	n := 0
	for _, c := range targets {
		if c.Send(msg) {
			n++
		}
	}
	return n
}

func (r *Router) publish(env Envelope) {
	r.mu.RLock()
	relay := r.relay
	r.mu.RUnlock()
	if relay == nil {
		return
	}
	if err := relay.Publish(env); err != nil {
		logger.Warn("Failed to relay event",
			logger.String("room", env.Room),
			logger.String("event", env.Event),
			logger.Err(err))
	}
}
