// Package circuitbreaker 实现熔断器模式（Circuit Breaker Pattern）
//
// 用在"可以降级"的依赖前面，例如Redis详情缓存：
// Redis宕机时每次读缓存都要等ReadTimeout才失败，熔断打开后直接跳过缓存查数据库。
//
// 三种状态：
//
//	CLOSED ──连续失败达到阈值──▶ OPEN ──冷却时间到──▶ HALF_OPEN
//	   ▲                                              │
//	   └──────────────探测成功───────────────────────┘
//	                  探测失败 → 回到OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	// StateClosed 正常放行，统计连续失败次数
	StateClosed State = iota
	// StateOpen 快速失败，不调用下游
	StateOpen
	// StateHalfOpen 只放行一个探测请求
	StateHalfOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开（或半开且探测中）时返回
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	// FailureThreshold 连续失败多少次后熔断，<=0时取5
	FailureThreshold uint32
	// Cooldown OPEN状态持续时间，<=0时取30s
	Cooldown time.Duration
}

// CircuitBreaker 熔断器，并发安全
type CircuitBreaker struct {
	name      string
	threshold uint32
	cooldown  time.Duration

	mu            sync.Mutex
	state         State
	failures      uint32    // CLOSED状态下的连续失败数
	openedAt      time.Time // 进入OPEN的时间
	probing       bool      // HALF_OPEN下是否已有探测请求在执行
	generation    uint64    // 每次状态切换递增，旧状态下放行的请求结果不再计入
	onStateChange func(name string, from, to State)

	now func() time.Time // 测试时替换
}

// NewCircuitBreaker 创建熔断器
//
// 示例：
//
//	cb := circuitbreaker.NewCircuitBreaker("redis-cache", circuitbreaker.Config{
//	    FailureThreshold: 5,
//	    Cooldown:         30 * time.Second,
//	})
func NewCircuitBreaker(name string, cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &CircuitBreaker{
		name:      name,
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
		state:     StateClosed,
		now:       time.Now,
	}
}

// SetStateChangeCallback 设置状态变化回调（记录日志、更新指标）
// 回调在持锁时调用，不能再调用熔断器的方法
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Execute 执行请求
// 熔断打开时不调用req，直接返回ErrOpenState；否则返回req的错误
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.before()
	if err != nil {
		return err
	}

	err = req()
	cb.after(generation, err == nil)
	return err
}

// before 请求前检查是否放行，返回放行时的状态代数
func (cb *CircuitBreaker) before() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentState() {
	case StateOpen:
		return 0, ErrOpenState
	case StateHalfOpen:
		if cb.probing {
			return 0, ErrOpenState
		}
		cb.probing = true
	}
	return cb.generation, nil
}

// after 记录请求结果并切换状态
// CLOSED时放行、HALF_OPEN后才返回的请求不是探测请求，结果直接忽略
func (cb *CircuitBreaker) after(generation uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if generation != cb.generation {
		return
	}

	switch cb.state {
	case StateClosed:
		if success {
			cb.failures = 0
			return
		}
		cb.failures++
		if cb.failures >= cb.threshold {
			cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.probing = false
		if success {
			cb.setState(StateClosed)
		} else {
			cb.setState(StateOpen)
		}
	}
}

// currentState OPEN超过冷却时间后转为HALF_OPEN
// 调用方必须持有锁
func (cb *CircuitBreaker) currentState() State {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.cooldown {
		cb.setState(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) setState(state State) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.failures = 0
	cb.probing = false
	if state == StateOpen {
		cb.openedAt = cb.now()
	}

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

// State 获取当前状态（只读）
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentState()
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}
