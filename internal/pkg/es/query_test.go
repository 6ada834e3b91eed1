package es

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"单词", "backup", [][]string{{"backup"}}},
		{"隐式AND", "auto backup script", [][]string{{"auto"}, {"backup"}, {"script"}}},
		{"OR析取", "backup OR restore", [][]string{{"backup", "restore"}}},
		{"AND与OR混合", "auto backup OR restore", [][]string{{"auto"}, {"backup", "restore"}}},
		{"连续OR", "a OR b OR c", [][]string{{"a", "b", "c"}}},
		{"多余空白", "  a   b  ", [][]string{{"a"}, {"b"}}},
		{"开头OR被忽略", "OR a b", [][]string{{"a"}, {"b"}}},
		{"结尾OR被忽略", "a b OR", [][]string{{"a"}, {"b"}}},
		{"空串", "", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ParseQuery(c.input)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("ParseQuery(%q) = %v, want %v", c.input, got, c.want)
			}
		})
	}
}
