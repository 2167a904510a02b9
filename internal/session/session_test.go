package session_test

import (
	"testing"

	"app/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestContext_SubscribeGetsCurrentStateImmediately(t *testing.T) {
	c := session.NewContext()
	c.Set(session.State{LoggedIn: true, Email: "admin@example.com", Role: "ADMIN"})

	var got []session.State
	c.Subscribe(func(s session.State) {
		got = append(got, s)
	})

	assert.Equal(t, 1, len(got))
	assert.True(t, got[0].LoggedIn)
	assert.Equal(t, "admin@example.com", got[0].Email)
}

func TestContext_SetNotifiesAllSubscribers(t *testing.T) {
	c := session.NewContext()

	var a, b []session.State
	c.Subscribe(func(s session.State) { a = append(a, s) })
	c.Subscribe(func(s session.State) { b = append(b, s) })

	c.Set(session.State{LoggedIn: true, Role: "ADMIN"})

	//初回通知 + Set
	assert.Equal(t, 2, len(a))
	assert.Equal(t, 2, len(b))
	assert.True(t, a[1].LoggedIn)
}

func TestContext_UnsubscribeStopsNotifications(t *testing.T) {
	c := session.NewContext()

	var got []session.State
	unsubscribe := c.Subscribe(func(s session.State) { got = append(got, s) })
	unsubscribe()

	c.Set(session.State{LoggedIn: true})

	assert.Equal(t, 1, len(got))
}

func TestContext_ClearLogsOut(t *testing.T) {
	c := session.NewContext()
	c.Set(session.State{LoggedIn: true, UserID: 1})

	c.Clear()

	assert.False(t, c.Current().LoggedIn)
	assert.Equal(t, int64(0), c.Current().UserID)
}

func TestContext_TeardownDropsSubscribersAndState(t *testing.T) {
	c := session.NewContext()

	var got []session.State
	c.Subscribe(func(s session.State) { got = append(got, s) })

	c.Teardown()
	c.Set(session.State{LoggedIn: true})

	//Teardown後は通知されない
	assert.Equal(t, 1, len(got))
	assert.True(t, c.Current().LoggedIn)
}
