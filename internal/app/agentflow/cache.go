package agentflow

import (
	"sync"

	"github.com/PabloGalante/farum-support/internal/domain"
)

type crewKey struct {
	crew   string
	userID domain.UserID
}

// CrewCache keeps built crews per (crew, user) for the life of the process.
// Nothing is evicted; entries go away only through Forget.
// TODO: bound the cache (LRU or idle TTL) once per-user crews carry state.
type CrewCache struct {
	mu    sync.Mutex
	crews map[crewKey]*Orchestrator
}

func NewCrewCache() *CrewCache {
	return &CrewCache{crews: make(map[crewKey]*Orchestrator)}
}

// Get returns the cached crew or builds and stores it. A failed build is
// not cached.
func (c *CrewCache) Get(crew string, userID domain.UserID, build func() (*Orchestrator, error)) (*Orchestrator, error) {
	key := crewKey{crew: crew, userID: userID}

	c.mu.Lock()
	defer c.mu.Unlock()

	if o, ok := c.crews[key]; ok {
		return o, nil
	}
	o, err := build()
	if err != nil {
		return nil, err
	}
	c.crews[key] = o
	return o, nil
}

// Forget drops every crew cached for userID.
func (c *CrewCache) Forget(userID domain.UserID) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.crews {
		if k.userID == userID {
			delete(c.crews, k)
			n++
		}
	}
	return n
}

func (c *CrewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.crews)
}
