package uniqueid

import "sync"

// UniqueID hands out sequential process identifiers, safe for concurrent use.
type UniqueID struct {
	mu     sync.Mutex
	nextID int
}

func Init() *UniqueID {
	return &UniqueID{
		mu:     sync.Mutex{},
		nextID: 1, // The first ID is 1
	}
}

func (u *UniqueID) GetUniqueID() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	id := u.nextID
	u.nextID++
	return id
}
