// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package conv

import (
	"sync"

	"github.com/ajroetker/go-convolve/hwy"
)

// Workspace recycles im2col matrices across pipeline calls. A buffer is
// borrowed for the duration of one call and returned before the call ends,
// so nothing the caller sees aliases it. A Workspace is safe for concurrent
// use; the zero value is ready to use.
//
// Pipelines accept a nil *Workspace and then allocate a fresh buffer per
// call.
type Workspace[T hwy.Floats] struct {
	pool sync.Pool
}

// NewWorkspace returns an empty Workspace.
func NewWorkspace[T hwy.Floats]() *Workspace[T] {
	return &Workspace[T]{}
}

// get returns a buffer of exactly n elements. Its contents are unspecified.
func (ws *Workspace[T]) get(n int) *[]T {
	if ws != nil {
		// A pooled buffer too small for this geometry is dropped.
		if buf, ok := ws.pool.Get().(*[]T); ok && cap(*buf) >= n {
			*buf = (*buf)[:n]
			return buf
		}
	}
	buf := make([]T, n)
	return &buf
}

// put returns buf to the workspace.
func (ws *Workspace[T]) put(buf *[]T) {
	if ws == nil {
		return
	}
	ws.pool.Put(buf)
}
