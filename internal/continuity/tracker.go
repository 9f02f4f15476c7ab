package continuity

import "sync"

// Tracker 记录每个用户当前会话的续接令牌。每个用户同一时间只有一个活动会话：
// 切换会话时令牌被清空，旧会话迟到的令牌不会被写入新会话。
type Tracker struct {
	mu     sync.Mutex
	active map[string]thread
}

type thread struct {
	session string
	token   string
}

func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]thread)}
}

// Begin 把 session 设为用户的活动会话并返回应使用的令牌。
// 与上一次的活动会话不同时返回空令牌。
func (t *Tracker) Begin(user, session string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.active[user]
	if ok && cur.session == session {
		return cur.token
	}
	t.active[user] = thread{session: session}
	return ""
}

// Token 返回 session 的当前令牌，session 不是活动会话时为空。
func (t *Tracker) Token(user, session string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.active[user]; ok && cur.session == session {
		return cur.token
	}
	return ""
}

// Advance 在 session 仍是活动会话时保存新令牌，返回是否保存。
func (t *Tracker) Advance(user, session, token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.active[user]
	if !ok || cur.session != session {
		return false
	}
	cur.token = token
	t.active[user] = cur
	return true
}

// Switch 把用户切换到 session，令牌重置为空。
func (t *Tracker) Switch(user, session string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active[user] = thread{session: session}
}
