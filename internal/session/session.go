package session

import (
	"sync"
	"time"
)

// State は現在のログイン状態。
type State struct {
	LoggedIn  bool
	UserID    int64
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Listener は状態が変わるたびに呼ばれる。
type Listener func(State)

// Context はプロセス全体でひとつのセッション置き場。
// 画面（ハンドラ）ごとに認証状態を別々に持たせず、ここを購読させる。
type Context struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

func NewContext() *Context {
	return &Context{listeners: map[int]Listener{}}
}

// Current は現在の状態のコピーを返す。
func (c *Context) Current() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Set はログイン/ログアウトで状態を差し替えて購読者へ知らせる。
func (c *Context) Set(s State) {
	c.mu.Lock()
	c.state = s
	ls := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.mu.Unlock()

	//ロックの外で通知する（購読者がCurrentを呼んでも詰まらないように）
	for _, l := range ls {
		l(s)
	}
}

// Clear はログアウト。
func (c *Context) Clear() {
	c.Set(State{})
}

// Subscribe は購読を登録し、解除用の関数を返す。
// 登録した時点の状態をすぐ1回通知する。
func (c *Context) Subscribe(l Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	current := c.state
	c.mu.Unlock()

	l(current)

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Teardown は全購読を破棄して状態を初期化する。
func (c *Context) Teardown() {
	c.mu.Lock()
	c.listeners = map[int]Listener{}
	c.state = State{}
	c.mu.Unlock()
}
