// Package safe_close 提供协同关闭控制
// Attached goroutines receive one shared close signal and report completion
// through done, so the process can wait for everything to wind down.
package safe_close

import (
	"sync"
)

// SafeClose coordinates graceful shutdown of attached goroutines
// SafeClose 协调附加协程的优雅关闭
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine. f must call done exactly once when it
// finishes and should return promptly after closeSignal fires.
// Attach 在独立协程中启动 f。f 结束时必须调用一次 done，
// 并在 closeSignal 触发后尽快返回。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal broadcasts the close signal. The first non-nil err wins and
// is returned from WaitClosed. Safe to call multiple times.
// SendCloseSignal 广播关闭信号。第一个非 nil 的 err 会被 WaitClosed 返回。
// 可以安全地多次调用。
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached goroutine called done
// WaitClosed 阻塞直到所有附加协程调用 done
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CloseSignal exposes the signal channel for select loops
// CloseSignal 暴露信号通道用于 select 循环
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}
