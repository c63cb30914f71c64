package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRule(t *testing.T) {
	t.Run("strips boundary tokens into checks", func(t *testing.T) {
		r, err := CompileRule(`\bcapsule\b`)
		require.NoError(t, err)
		assert.True(t, r.leftBound)
		assert.True(t, r.rightBound)
		assert.Equal(t, `\bcapsule\b`, r.Source())
	})

	t.Run("unbounded rule", func(t *testing.T) {
		r, err := CompileRule(`软糖`)
		require.NoError(t, err)
		assert.False(t, r.leftBound)
		assert.False(t, r.rightBound)
	})

	t.Run("rejects empty pattern", func(t *testing.T) {
		_, err := CompileRule(`\b\b`)
		assert.Error(t, err)
	})

	t.Run("rejects invalid regex", func(t *testing.T) {
		_, err := CompileRule(`\b(unclosed\b`)
		assert.Error(t, err)
	})
}

func TestRule_FindAll(t *testing.T) {
	tests := []struct {
		name string
		rule string
		text string
		want []string
	}{
		{
			name: "whole words only",
			rule: `\btab\b`,
			text: "tab tabs tab",
			want: []string{"tab", "tab"},
		},
		{
			name: "case-insensitive",
			rule: `\bcapsule\b`,
			text: "Vitamin C CAPSULE",
			want: []string{"CAPSULE"},
		},
		{
			name: "rejected candidate does not hide a later match",
			rule: `\bgel\b`,
			text: "gelgel gel",
			want: []string{"gel"},
		},
		{
			name: "whitespace run inside pattern",
			rule: `\bliquid\s*drops\b`,
			text: "vitamin d liquid  drops",
			want: []string{"liquid  drops"},
		},
		{
			name: "right boundary fails on plural",
			rule: `\bliquid\s*drop\b`,
			text: "liquid drops",
			want: nil,
		},
		{
			name: "bounded CJK rule needs non-word neighbours",
			rule: `\b片\b`,
			text: "维生素c咀嚼片",
			want: nil,
		},
		{
			name: "bounded CJK rule between spaces",
			rule: `\b片\b`,
			text: "钙片 片 100",
			want: []string{"片"},
		},
		{
			name: "unbounded CJK rule matches inside a word",
			rule: `软糖`,
			text: "儿童维生素软糖",
			want: []string{"软糖"},
		},
		{
			name: "alternation retries a longer branch at the same start",
			rule: `\b(chew|chewable)\b`,
			text: "chewable gummies",
			want: []string{"chewable"},
		},
		{
			name: "optional suffix after alternation",
			rule: `\b(tab|tablet)s?\b`,
			text: "tablets and tab",
			want: []string{"tablets", "tab"},
		},
		{
			name: "shorter branch still wins when it ends on a boundary",
			rule: `\b(gel|gelcap)\b`,
			text: "gel gelcaps",
			want: []string{"gel"},
		},
		{
			name: "retry respects the right boundary",
			rule: `\b(drop|drops)\b`,
			text: "dropsy",
			want: nil,
		},
		{
			name: "punctuation is a boundary",
			rule: `\boil\b`,
			text: "fish-oil, (oil)",
			want: []string{"oil", "oil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MustCompileRule(tt.rule)
			assert.Equal(t, tt.want, r.FindAll(tt.text))
			assert.Equal(t, len(tt.want) > 0, r.MatchString(tt.text))
		})
	}
}

func TestRule_Anchor(t *testing.T) {
	tests := []struct {
		rule string
		want string
	}{
		{`\bcapsule\b`, "capsule"},
		{`\bliquid\s*drop\b`, "liquid"},
		{`\bfl ozs\b`, "fl ozs"},
		{`\bcaps?\b`, "cap"},
		{`\bdrops+\b`, "drops"},
		{`\b(tab|tabs)\b`, ""},
		{`cap|tab`, ""},
		{`\bCAPLETS\b`, "caplets"},
		{`精华液`, "精华液"},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			assert.Equal(t, tt.want, MustCompileRule(tt.rule).Anchor())
		})
	}
}

func TestIsBoundary(t *testing.T) {
	s := "a b"
	assert.True(t, isBoundary(s, 0))
	assert.True(t, isBoundary(s, 1))
	assert.True(t, isBoundary(s, 2))
	assert.True(t, isBoundary(s, 3))
	assert.False(t, isBoundary("ab", 1))
	assert.False(t, isBoundary("", 0))
	assert.False(t, isBoundary("胶囊", len("胶")))
}
