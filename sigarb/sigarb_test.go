// Copyright (c) 2024, The yash-go Authors

//go:build unix

package sigarb

import (
	"syscall"
	"testing"
	"time"

	qt "github.com/go-quicktest/qt"
)

func TestNewWatchesSIGCHLDByDefault(t *testing.T) {
	a := New()
	defer a.Stop()
	qt.Assert(t, qt.IsTrue(a.watched[int(syscall.SIGCHLD)]))
}

func TestNewWatchesExtraSignals(t *testing.T) {
	a := New(int(syscall.SIGUSR1))
	defer a.Stop()
	qt.Assert(t, qt.IsTrue(a.watched[int(syscall.SIGUSR1)]))
	qt.Assert(t, qt.IsTrue(a.watched[int(syscall.SIGCHLD)]))
}

func TestProtectRunsFn(t *testing.T) {
	a := New()
	defer a.Stop()

	ran := false
	a.Protect(func() { ran = true })
	qt.Assert(t, qt.IsTrue(ran))
}

func TestWaitForSIGCHLDReturnsZeroOnReap(t *testing.T) {
	a := New()
	defer a.Stop()

	done := make(chan int, 1)
	go func() {
		done <- a.WaitForSIGCHLD(false, nil)
	}()

	// Give the goroutine time to start waiting before delivering.
	time.Sleep(10 * time.Millisecond)
	qt.Assert(t, qt.IsNil(syscall.Kill(syscall.Getpid(), syscall.SIGCHLD)))

	select {
	case n := <-done:
		// spec.md §5: zero means "a SIGCHLD fired and was reaped", not
		// SIGCHLD's own signal number.
		qt.Assert(t, qt.Equals(n, 0))
	case <-time.After(time.Second):
		t.Fatal("WaitForSIGCHLD did not return after SIGCHLD")
	}
}

func TestWaitForSIGCHLDInterruptibleReturnsSignalNumber(t *testing.T) {
	a := New(int(syscall.SIGUSR1))
	defer a.Stop()

	done := make(chan int, 1)
	go func() {
		done <- a.WaitForSIGCHLD(true, nil)
	}()

	time.Sleep(10 * time.Millisecond)
	qt.Assert(t, qt.IsNil(syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)))

	select {
	case n := <-done:
		qt.Assert(t, qt.Equals(n, int(syscall.SIGUSR1)))
	case <-time.After(time.Second):
		t.Fatal("WaitForSIGCHLD did not return after SIGUSR1")
	}
}

func TestWaitForSIGCHLDTrapSignalReturnsEvenWhenNotInterruptible(t *testing.T) {
	a := New(int(syscall.SIGUSR2))
	defer a.Stop()

	done := make(chan int, 1)
	go func() {
		done <- a.WaitForSIGCHLD(false, []int{int(syscall.SIGUSR2)})
	}()

	time.Sleep(10 * time.Millisecond)
	qt.Assert(t, qt.IsNil(syscall.Kill(syscall.Getpid(), syscall.SIGUSR2)))

	select {
	case n := <-done:
		qt.Assert(t, qt.Equals(n, int(syscall.SIGUSR2)))
	case <-time.After(time.Second):
		t.Fatal("WaitForSIGCHLD did not return after SIGUSR2")
	}
}

func TestSignalNumberUnknownType(t *testing.T) {
	qt.Assert(t, qt.Equals(signalNumber(fakeSignal{}), 0))
}

type fakeSignal struct{}

func (fakeSignal) String() string { return "fake" }
func (fakeSignal) Signal()        {}
