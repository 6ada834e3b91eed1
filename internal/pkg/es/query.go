package es

import "strings"

// ParseQuery 把全文检索语法串解析为 AND 组。
// 语法：空格分隔的词隐式 AND；字面量 OR 把相邻两个词并入同一个析取组；
// 没有其他算符。"a b OR c" 解析为 AND(a, OR(b, c))。
func ParseQuery(q string) [][]string {
	tokens := strings.Fields(q)

	var groups [][]string
	pendingOr := false
	for _, tok := range tokens {
		if tok == "OR" {
			// 开头的 OR 没有左操作数，按普通缺省处理
			if len(groups) > 0 {
				pendingOr = true
			}
			continue
		}
		if pendingOr {
			last := len(groups) - 1
			groups[last] = append(groups[last], tok)
			pendingOr = false
			continue
		}
		groups = append(groups, []string{tok})
	}
	return groups
}
