package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationID(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		want   string
		wantOK bool
	}{
		{name: "sorted input", a: "alice", b: "bob", want: "alice_bob", wantOK: true},
		{name: "reversed input", a: "bob", b: "alice", want: "alice_bob", wantOK: true},
		{name: "same user", a: "uid1", b: "uid1", want: "uid1_uid1", wantOK: true},
		{name: "byte order not locale order", a: "b", b: "Z", want: "Z_b", wantOK: true},
		{name: "first empty", a: "", b: "bob"},
		{name: "second empty", a: "alice", b: ""},
		{name: "both empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConversationID(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConversationID_Commutative(t *testing.T) {
	pairs := [][2]string{
		{"x1Y", "x1y"},
		{"9f2c", "a001"},
		{"user_a", "user"},
		{"ナマステ", "namaste"},
	}

	for _, p := range pairs {
		ab, okAB := ConversationID(p[0], p[1])
		ba, okBA := ConversationID(p[1], p[0])
		assert.True(t, okAB)
		assert.True(t, okBA)
		assert.Equal(t, ab, ba, "pair %v", p)
	}
}

func TestDestination_CreatedUnix(t *testing.T) {
	d := Destination{}
	assert.Equal(t, int64(0), d.CreatedUnix())
}
