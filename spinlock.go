package vkdev

import (
	"runtime"
	"sync/atomic"
)

// spinLock is a spin-wait mutex for critical sections that are a handful of
// integer additions, such as the stat counter updates performed once per
// submit and once per present. The hold time is short enough that the wake
// latency of a blocking mutex would dominate it.
type spinLock struct {
	state atomic.Uint32
}

func (l *spinLock) Lock() {
	for !l.state.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

func (l *spinLock) Unlock() {
	l.state.Store(0)
}
