package usecase

import (
	"hash/fnv"
	"sync"
)

// lockSet serializes turns of the same session. Sessions hash onto a fixed
// number of mutexes, so unrelated sessions rarely contend.
type lockSet struct {
	stripes [lockStripes]sync.Mutex
}

func (ls *lockSet) lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	m := &ls.stripes[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}
