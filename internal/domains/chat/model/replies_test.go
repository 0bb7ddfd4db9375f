package model_test

import (
	"pawstay/internal/domains/chat/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchReply(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantRule  int
		wantMatch bool
	}{
		{name: "price question", content: "What does a stay cost?", wantRule: 2, wantMatch: true},
		{name: "keyword with punctuation", content: "Cancel!!", wantRule: 0, wantMatch: true},
		{name: "inflected keyword", content: "Are you OPENING early tomorrow?", wantRule: 3, wantMatch: true},
		{name: "phrase", content: "Can you pick up my dog?", wantRule: 5, wantMatch: true},
		{name: "hyphenated phrase", content: "Where is drop-off?", wantRule: 5, wantMatch: true},
		{name: "greeting at end", content: "hi", wantRule: 8, wantMatch: true},
		{name: "eat inside great", content: "That sounds great", wantMatch: false},
		{name: "close inside closet", content: "He sleeps in the closet", wantMatch: false},
		{name: "hi inside this", content: "this one", wantMatch: false},
		{name: "rate inside grateful", content: "So grateful", wantMatch: false},
		{name: "no keyword", content: "Do you like turtles?", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := model.MatchReply(tt.content)

			assert.Equal(t, tt.wantMatch, ok)

			if tt.wantMatch {
				assert.Equal(t, model.ReplyRules[tt.wantRule].Reply, reply)
			} else {
				assert.Empty(t, reply)
			}
		})
	}
}
