package utils

import (
	"reflect"
	"testing"
)

func TestExtractMentions(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "dedupes repeated mentions",
			text: "hi @alice and @bob, also @alice",
			want: []string{"alice", "bob"},
		},
		{
			name: "no mentions",
			text: "plain text without any at-signs",
			want: nil,
		},
		{
			name: "word characters only",
			text: "ping @dev_ops2 about @foo-bar",
			want: []string{"dev_ops2", "foo"},
		},
		{
			name: "case preserved",
			text: "cc @Alice and @alice",
			want: []string{"Alice", "alice"},
		},
		{
			name: "mention at end of sentence",
			text: "thanks @carol.",
			want: []string{"carol"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractMentions(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractMentions(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
