package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("service unavailable")

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(threshold uint32, cooldown time.Duration) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cb := NewCircuitBreaker("test", Config{FailureThreshold: threshold, Cooldown: cooldown})
	cb.now = clock.Now
	return cb, clock
}

func fail() error    { return errUnavailable }
func succeed() error { return nil }

func TestCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker("redis-cache", Config{})
	assert.Equal(t, uint32(5), cb.threshold)
	assert.Equal(t, 30*time.Second, cb.cooldown)
	assert.Equal(t, "redis-cache", cb.Name())
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Minute)

	// 成功会清零连续失败数
	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	require.NoError(t, cb.Execute(succeed))
	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断打开时不调用下游")
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	t.Run("探测成功后关闭", func(t *testing.T) {
		cb, clock := newTestBreaker(1, time.Minute)
		_ = cb.Execute(fail)
		require.Equal(t, StateOpen, cb.State())

		clock.Advance(59 * time.Second)
		assert.Equal(t, StateOpen, cb.State())

		clock.Advance(time.Second)
		assert.Equal(t, StateHalfOpen, cb.State())

		require.NoError(t, cb.Execute(succeed))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("探测失败后重新打开", func(t *testing.T) {
		cb, clock := newTestBreaker(1, time.Minute)
		_ = cb.Execute(fail)
		clock.Advance(time.Minute)

		assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
		assert.Equal(t, StateOpen, cb.State())

		clock.Advance(30 * time.Second)
		assert.Equal(t, StateOpen, cb.State(), "冷却时间重新计算")
	})

	t.Run("半开状态只放行一个探测", func(t *testing.T) {
		cb, clock := newTestBreaker(1, time.Minute)
		_ = cb.Execute(fail)
		clock.Advance(time.Minute)

		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error)
		go func() {
			done <- cb.Execute(func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		assert.ErrorIs(t, cb.Execute(succeed), ErrOpenState)

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, StateClosed, cb.State())
	})
}

// blockingCall 在goroutine中执行一个阻塞请求，返回放行与结果通道
func blockingCall(cb *CircuitBreaker, result error) (release func(), done <-chan error) {
	started := make(chan struct{})
	unblock := make(chan struct{})
	ch := make(chan error, 1)
	go func() {
		ch <- cb.Execute(func() error {
			close(started)
			<-unblock
			return result
		})
	}()
	<-started
	return func() { close(unblock) }, ch
}

func TestCircuitBreaker_StaleResultIgnored(t *testing.T) {
	cb, clock := newTestBreaker(1, time.Minute)

	// CLOSED时放行的慢请求
	releaseSlow, slowDone := blockingCall(cb, errUnavailable)

	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	require.Equal(t, StateOpen, cb.State())
	clock.Advance(time.Minute)

	releaseTrial, trialDone := blockingCall(cb, nil)
	require.Equal(t, StateHalfOpen, cb.State())

	// 慢请求在半开状态返回失败，不能替探测请求做决定
	releaseSlow()
	assert.ErrorIs(t, <-slowDone, errUnavailable)
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(succeed), ErrOpenState, "探测仍在执行")

	releaseTrial()
	require.NoError(t, <-trialDone)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb, clock := newTestBreaker(2, time.Second)

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		transitions = append(transitions, name+":"+from.String()+"->"+to.String())
	})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	clock.Advance(time.Second)
	_ = cb.Execute(succeed)

	assert.Equal(t, []string{
		"test:CLOSED->OPEN",
		"test:OPEN->HALF_OPEN",
		"test:HALF_OPEN->CLOSED",
	}, transitions)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
