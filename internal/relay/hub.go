package relay

import (
	"log/slog"
	"sync"
)

// frameRoom holds the participants of one iframe connection: any number of
// parent-side observers and at most one child document. Observed selectors
// are refcounted per parent so the child only hears about first-interest and
// last-disinterest, and so a reconnecting child can be re-primed.
type frameRoom struct {
	frameID    string
	parents    map[string]*Client // clientID -> client
	child      *Client
	childReady bool
	observed   map[string]map[string]bool // selector -> set of parent clientIDs
}

func newFrameRoom(frameID string) *frameRoom {
	return &frameRoom{
		frameID:  frameID,
		parents:  make(map[string]*Client),
		observed: make(map[string]map[string]bool),
	}
}

// Hub routes relay messages between the parent and child sides of each
// frame. One Hub serves all frames of a document.
type Hub struct {
	mu         sync.RWMutex
	frames     map[string]*frameRoom // frameID -> room
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		frames:     make(map[string]*frameRoom),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.frames[client.FrameID]
	if !ok {
		room = newFrameRoom(client.FrameID)
		h.frames[client.FrameID] = room
	}

	var ready bool
	switch client.Role {
	case RoleChild:
		room.child = client
		room.childReady = false
	default:
		room.parents[client.ClientID] = client
		ready = room.childReady
	}
	h.mu.Unlock()

	// A parent joining an already-ready frame learns immediately that it
	// can start observing.
	if ready {
		client.Send(&Message{Type: TypeIframeReady, FrameID: client.FrameID})
	}

	slog.Info("relay client joined", "client", client.ClientID, "frame", client.FrameID, "role", client.Role)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.frames[client.FrameID]
	if !ok {
		h.mu.Unlock()
		return
	}

	var released []string
	if client.Role == RoleChild {
		if room.child == client {
			room.child = nil
			room.childReady = false
		}
	} else {
		delete(room.parents, client.ClientID)
		// Drop this parent's interest; selectors nobody wants anymore are
		// torn down on the child.
		for selector, owners := range room.observed {
			if owners[client.ClientID] {
				delete(owners, client.ClientID)
				if len(owners) == 0 {
					delete(room.observed, selector)
					released = append(released, selector)
				}
			}
		}
	}
	close(client.send)

	child := room.child
	childReady := room.childReady
	if len(room.parents) == 0 && room.child == nil {
		delete(h.frames, client.FrameID)
	}
	h.mu.Unlock()

	if child != nil && childReady {
		for _, selector := range released {
			child.Send(&Message{Type: TypeUnobserveElement, Selector: selector})
		}
	}

	slog.Info("relay client left", "client", client.ClientID, "frame", client.FrameID, "role", client.Role)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeIframeReady:
		h.handleIframeReady(sender)
	case TypeObserveElement:
		h.handleObserve(sender, msg)
	case TypeUnobserveElement:
		h.handleUnobserve(sender, msg)
	case TypeElementChange:
		h.handleElementChange(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
	}
}

// handleIframeReady marks the child usable, replays every selector the
// parents already asked for, and lets the parents know the frame is live.
func (h *Hub) handleIframeReady(sender *Client) {
	if sender.Role != RoleChild {
		return
	}

	h.mu.Lock()
	room, ok := h.frames[sender.FrameID]
	if !ok || room.child != sender {
		h.mu.Unlock()
		return
	}
	room.childReady = true
	selectors := make([]string, 0, len(room.observed))
	for selector := range room.observed {
		selectors = append(selectors, selector)
	}
	parents := roomParents(room)
	h.mu.Unlock()

	for _, selector := range selectors {
		sender.Send(&Message{Type: TypeObserveElement, Selector: selector})
	}
	ready := &Message{Type: TypeIframeReady, FrameID: sender.FrameID}
	for _, p := range parents {
		p.Send(ready)
	}
}

func (h *Hub) handleObserve(sender *Client, msg *Message) {
	if sender.Role != RoleParent || msg.Selector == "" {
		return
	}

	h.mu.Lock()
	room, ok := h.frames[sender.FrameID]
	if !ok {
		h.mu.Unlock()
		return
	}
	owners, existed := room.observed[msg.Selector]
	if !existed {
		owners = make(map[string]bool)
		room.observed[msg.Selector] = owners
	}
	owners[sender.ClientID] = true
	child := room.child
	forward := !existed && room.childReady
	h.mu.Unlock()

	if forward && child != nil {
		child.Send(&Message{Type: TypeObserveElement, Selector: msg.Selector})
	}
}

func (h *Hub) handleUnobserve(sender *Client, msg *Message) {
	if sender.Role != RoleParent || msg.Selector == "" {
		return
	}

	h.mu.Lock()
	room, ok := h.frames[sender.FrameID]
	if !ok {
		h.mu.Unlock()
		return
	}
	var lastInterest bool
	if owners, exists := room.observed[msg.Selector]; exists {
		delete(owners, sender.ClientID)
		if len(owners) == 0 {
			delete(room.observed, msg.Selector)
			lastInterest = true
		}
	}
	child := room.child
	childReady := room.childReady
	h.mu.Unlock()

	if lastInterest && child != nil && childReady {
		child.Send(&Message{Type: TypeUnobserveElement, Selector: msg.Selector})
	}
}

// handleElementChange forwards a child-reported rect to every parent that
// asked for the selector.
func (h *Hub) handleElementChange(sender *Client, msg *Message) {
	if sender.Role != RoleChild {
		return
	}

	h.mu.RLock()
	room, ok := h.frames[sender.FrameID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	owners := room.observed[msg.Selector]
	recipients := make([]*Client, 0, len(owners))
	for clientID := range owners {
		if p, ok := room.parents[clientID]; ok {
			recipients = append(recipients, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range recipients {
		p.Send(msg)
	}
}

func roomParents(room *frameRoom) []*Client {
	parents := make([]*Client, 0, len(room.parents))
	for _, p := range room.parents {
		parents = append(parents, p)
	}
	return parents
}
