// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the process wide printf sink. Printf is for warnings
// a user should see, DPrintf for per-command developer output which is
// dropped unless a debug sink is installed.
package conlog

import (
	"log"
	"sync"
)

var (
	mu sync.RWMutex
	p  = log.Printf
	dp = func(string, ...interface{}) {}
)

func SetPrintf(f func(string, ...interface{})) {
	mu.Lock()
	defer mu.Unlock()
	p = f
}

func SetDebugPrintf(f func(string, ...interface{})) {
	mu.Lock()
	defer mu.Unlock()
	dp = f
}

func Printf(format string, v ...interface{}) {
	mu.RLock()
	f := p
	mu.RUnlock()
	f(format, v...)
}

func DPrintf(format string, v ...interface{}) {
	mu.RLock()
	f := dp
	mu.RUnlock()
	f(format, v...)
}
