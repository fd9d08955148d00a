package service

import (
	"fmt"
	"sync"
)

// keyMutex hands out one mutex per store key. Entries are dropped once nobody holds or waits for them.
type keyMutex struct {
	mutexes map[string]*cntMutex
	mapMtx  sync.Mutex
}

type cntMutex struct {
	cnt int
	sync.Mutex
}

func newKeyMutex() *keyMutex {
	return &keyMutex{
		mutexes: make(map[string]*cntMutex),
	}
}

// Lock blocks until the mutex for key is available.
func (k *keyMutex) Lock(key string) {
	k.mapMtx.Lock()
	mtx, ok := k.mutexes[key]
	if ok {
		mtx.cnt++
	} else {
		mtx = &cntMutex{cnt: 1}
		k.mutexes[key] = mtx
	}
	k.mapMtx.Unlock()

	mtx.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that is not locked panics.
func (k *keyMutex) Unlock(key string) {
	k.mapMtx.Lock()
	defer k.mapMtx.Unlock()

	mtx, ok := k.mutexes[key]
	if !ok {
		panic(fmt.Sprintf("double unlock for key %q", key))
	}
	mtx.cnt--
	if mtx.cnt == 0 {
		delete(k.mutexes, key)
	}
	mtx.Unlock()
}
