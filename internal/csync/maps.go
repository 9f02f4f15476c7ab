package csync

import "sync"

// Map 是读写锁保护的泛型映射。
type Map[K comparable, V any] struct {
	inner map[K]V
	mu    sync.RWMutex
}

// NewMap 创建一个新的线程安全映射。
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		inner: make(map[K]V),
	}
}

// Set 在映射中为指定的键设置值。
func (m *Map[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inner[key] = value
}

// Get 从映射中获取指定键的值。
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.inner[key]
	return v, ok
}

// Len 返回映射中的项目数量。
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.inner)
}

// Compute 在写锁内用 fn 计算键的新值并返回。fn 的 ok 表示键原先是否存在；
// fn 返回 keep 为 false 时删除该键。
func (m *Map[K, V]) Compute(key K, fn func(old V, ok bool) (v V, keep bool)) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.inner[key]
	v, keep := fn(old, ok)
	if keep {
		m.inner[key] = v
	} else {
		delete(m.inner, key)
	}
	return v
}
